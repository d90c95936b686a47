// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"edn/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the EDN REPL, %s! Press Ctrl-D to exit.\n", currentUser.Username)
	repl.Start(os.Stdin, os.Stdout)
}
