//go:build cgo && netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lgfortran -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Dense views and the stencil solves go through blas64, route them to the
// system OpenBLAS when built with -tags netlib.
func init() {
	blas64.Use(netblas.Implementation{})
	logrus.Debug("Using netlib to accelerate BLAS")
}
