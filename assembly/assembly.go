// Package assembly builds the model matrices of every matrix index of a
// resolution in parallel.
package assembly

import (
	"context"
	"fmt"
	"runtime"

	"github.com/notargets/planerbc/backend"
	"github.com/notargets/planerbc/resolution"
	"github.com/notargets/planerbc/types"
	"github.com/notargets/planerbc/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Request selects one operator of a coupled system of fields
type Request struct {
	Op     types.OperatorKind
	Fields []types.FieldID
	Scheme types.BCScheme
}

func (r Request) String() string {
	return fmt.Sprintf("%v%v/%v", r.Op, r.Fields, r.Scheme)
}

type System struct {
	be      backend.Backend
	res     resolution.Resolution
	cpl     resolution.Coupling
	bcs     types.BcMap
	nds     types.NdMap
	Workers int
	log     *logrus.Logger
}

// NewSystem checks the configuration against the declarations of the backend
// and completes the parameters with the ones the backend derives itself.
func NewSystem(be backend.Backend, res resolution.Resolution, cpl resolution.Coupling,
	bcs types.BcMap, nds types.NdMap, log *logrus.Logger) (s *System, err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	for _, pn := range be.FieldNames() {
		if _, err = bcs.Lookup(pn); err != nil {
			return
		}
	}
	nds = nds.Merge(be.AutomaticParameters(nds))
	for _, nd := range be.ParamNames() {
		if _, err = nds.Lookup(nd); err != nil {
			return
		}
	}
	s = &System{
		be:      be,
		res:     res,
		cpl:     cpl,
		bcs:     bcs,
		nds:     nds,
		Workers: runtime.NumCPU(),
		log:     log,
	}
	return
}

func (s *System) Params() types.NdMap { return s.nds }

func (s *System) NMat() int { return s.cpl.NMat() }

func (s *System) Eigs(matIdx int) []float64 { return s.cpl.Eigs(matIdx) }

// Assemble returns the matrix of req for every matrix index. Each index is
// built by its own job writing only its own slot; the first failure cancels
// the jobs not yet started.
func (s *System) Assemble(ctx context.Context, req Request) (mats []utils.DecoupledZSparse, err error) {
	var (
		nMat = s.cpl.NMat()
	)
	mats = make([]utils.DecoupledZSparse, nMat)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Workers, 1))
	for matIdx := 0; matIdx < nMat; matIdx++ {
		matIdx := matIdx
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return
			}
			mats[matIdx], err = s.be.ModelMatrix(req.Op, req.Fields, matIdx, req.Scheme,
				s.res, s.cpl.Eigs(matIdx), s.bcs, s.nds)
			if err != nil {
				err = fmt.Errorf("%v at matrix index %d: %w", req, matIdx, err)
			}
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"request": req,
		"nMat":    nMat,
		"workers": s.Workers,
	}).Info("assembled")
	s.log.Debug(utils.GetMemUsage())
	return
}

// Stencils returns the Galerkin stencil of f for every matrix index
func (s *System) Stencils(ctx context.Context, f types.FieldID, makeSquare bool) (stencils []utils.DecoupledZSparse, err error) {
	var (
		nMat = s.cpl.NMat()
	)
	stencils = make([]utils.DecoupledZSparse, nMat)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Workers, 1))
	for matIdx := 0; matIdx < nMat; matIdx++ {
		matIdx := matIdx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			S, err := s.be.GalerkinStencil(f, matIdx, s.res, s.cpl.Eigs(matIdx), makeSquare, s.bcs, s.nds)
			if err != nil {
				return fmt.Errorf("stencil of %v at matrix index %d: %w", f, matIdx, err)
			}
			stencils[matIdx] = utils.RealZ(S)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}

// Info collects the equation and per index sizing of every declared field
func (s *System) Info(fields []types.FieldID) (eqs map[types.FieldID]backend.EquationInfo,
	ops map[types.FieldID][]backend.OperatorInfo, err error) {
	eqs = make(map[types.FieldID]backend.EquationInfo, len(fields))
	ops = make(map[types.FieldID][]backend.OperatorInfo, len(fields))
	for _, f := range fields {
		eqs[f] = s.be.EquationInfo(f, s.res)
		if ops[f], err = s.be.OperatorInfo(f, s.res, s.cpl, s.bcs); err != nil {
			return nil, nil, err
		}
	}
	return
}
