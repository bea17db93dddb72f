package main

import "wifiviz/cmd"

func main() {
	cmd.Execute()
}
