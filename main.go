package main

import "github.com/ThaboMollo/Julius/cmd"

func main() {
	cmd.Execute()
}
