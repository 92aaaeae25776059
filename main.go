// SPDX-License-Identifier: MPL-2.0

package main

import "supplyloader/cmd/supplyloader"

func main() {
	cmd.Main()
}
