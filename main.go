package main

import "github.com/glbter/portfolio-dashboard/cmd"

func main() {
	cmd.Execute()
}
