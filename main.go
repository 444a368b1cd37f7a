package main

import "github.com/voltmover/crm/cmd"

func main() {
	cmd.Execute()
}
