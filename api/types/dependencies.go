package types

import (
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/database"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/captions"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/workers"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/worship"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	CaptionService *captions.Service
	WorshipService *worship.Service
	JobService     jobs.Service
	WorkerPool     *workers.WorkerPool
}
