package main

import "github.com/jerricksforjesus/JerricksJesus-sub000/cmd"

func main() {
	cmd.Execute()
}
