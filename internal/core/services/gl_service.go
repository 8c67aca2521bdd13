package services

import (
	"context"
	"fmt"

	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
)

// glService serves chart-of-accounts queries. The chart is immutable during
// ledger operation so everything here is read-only.
type glService struct {
	glRepo portsrepo.GLSetupRepositoryFacade
}

// NewGLService creates a new chart-of-accounts service.
func NewGLService(glRepo portsrepo.GLSetupRepositoryFacade) portssvc.GLSvcFacade {
	return &glService{glRepo: glRepo}
}

var _ portssvc.GLSvcFacade = (*glService)(nil)

func (s *glService) Find(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	return s.glRepo.FindGL(ctx, glNum)
}

func (s *glService) Leaf(ctx context.Context, glNum string) (bool, error) {
	gl, err := s.glRepo.FindGL(ctx, glNum)
	if err != nil {
		return false, err
	}
	return gl.IsLeaf(), nil
}

func (s *glService) ListByLayer(ctx context.Context, layerID int) ([]domain.GLSetup, error) {
	return s.glRepo.ListGLsByLayer(ctx, layerID)
}

func (s *glService) ListByLayerAndParent(ctx context.Context, layerID int, parentGLNum string) ([]domain.GLSetup, error) {
	return s.glRepo.ListGLsByLayerAndParent(ctx, layerID, parentGLNum)
}

// InterestPayableReceivableLeaves returns leaf GLs for interest payable (13*)
// and receivable (23*) selection in sub-product setup.
func (s *glService) InterestPayableReceivableLeaves(ctx context.Context) ([]domain.GLSetup, error) {
	leaves, err := s.glRepo.ListGLsByLayer(ctx, domain.LeafLayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaf GLs: %w", err)
	}
	out := make([]domain.GLSetup, 0, len(leaves))
	for _, gl := range leaves {
		if domain.IsInterestPayableGL(gl.GLNum) || domain.IsInterestReceivableGL(gl.GLNum) {
			out = append(out, gl)
		}
	}
	return out, nil
}

// InterestIncomeExpenditureLeaves returns leaf GLs for interest expenditure
// (14*) and income (24*).
func (s *glService) InterestIncomeExpenditureLeaves(ctx context.Context) ([]domain.GLSetup, error) {
	leaves, err := s.glRepo.ListGLsByLayer(ctx, domain.LeafLayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaf GLs: %w", err)
	}
	out := make([]domain.GLSetup, 0, len(leaves))
	for _, gl := range leaves {
		if domain.IsInterestExpenditureGL(gl.GLNum) || domain.IsInterestIncomeGL(gl.GLNum) {
			out = append(out, gl)
		}
	}
	return out, nil
}

func (s *glService) ActiveGLNums(ctx context.Context) ([]string, error) {
	return s.glRepo.ListActiveGLNums(ctx)
}

func (s *glService) BalanceSheetGLNums(ctx context.Context) ([]string, error) {
	return s.glRepo.ListBalanceSheetGLNums(ctx)
}
