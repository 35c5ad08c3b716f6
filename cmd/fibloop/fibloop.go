// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gopherc/fibloop/workload"
)

func main() {
	if err := workload.Report(os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}
