// Copyright © 2024 The n2h-helper authors

package main

import "github.com/openmigrate/n2h-helper/cmd"

func main() {
	cmd.Execute()
}
