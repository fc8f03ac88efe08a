package main

import "dconf-apply/cmd"

func main() {
	cmd.Execute()
}
