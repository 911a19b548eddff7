package main

import "github.com/klytics/stafkit/cmd"

func main() {
	cmd.Execute()
}
