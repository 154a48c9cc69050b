package tgconsumer_test

import (
	"github.com/usnistgov/ndnlp/core/testenv"
)

var makeAR = testenv.MakeAR
