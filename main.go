package main

import "github.com/gerunddev/repobrowse/cmd"

func main() {
	cmd.Execute()
}
