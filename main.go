package main

import "github.com/PolarWolf314/pwmn/cmd"

func main() {
	cmd.Execute()
}
