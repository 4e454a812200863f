package main

import "github.com/theirongolddev/spendwatch/cmd"

func main() {
	cmd.Execute()
}
