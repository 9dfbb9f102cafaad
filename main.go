package main

import "picklist/cmd"

func main() {
	cmd.Execute()
}
