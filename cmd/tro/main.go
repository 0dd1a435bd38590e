// SPDX-License-Identifier: Apache-2.0

package main

import "tro/cmd/cli"

func main() {
	cli.RunCLI()
}
