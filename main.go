package main

import "github.com/alexiusacademia/gotb/cmd"

func main() {
	cmd.Execute()
}
