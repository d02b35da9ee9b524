package main

import "github.com/mechbay/mechtbl/cmd/mechtbl/cmd"

func main() {
	cmd.Execute()
}
