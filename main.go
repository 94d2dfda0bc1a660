package main

import "github.com/kprasanna/staff-management/cmd"

func main() {
	cmd.Execute()
}
