/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/telogical/gqlx/cmd"

func main() {
	cmd.Execute()
}
