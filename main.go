package main

import "github.com/soocke/graph-score/cmd"

func main() {
	cmd.Execute()
}
