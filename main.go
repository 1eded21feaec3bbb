// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/manualhub/manualhub/cmd/manualhub"

func main() {
	cmd.Execute()
}
