// SPDX-License-Identifier: MPL-2.0

package main

import cmd "straycat-cli/cmd/straycat"

func main() {
	cmd.Execute()
}
