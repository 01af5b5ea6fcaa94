package main

import "github.com/Jaggernaut555/chaoticbot/cmd"

func main() {
	cmd.Execute()
}
