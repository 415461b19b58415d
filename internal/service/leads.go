package service

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/util"
)

const leadsResource = "leads"

type LeadService struct {
	api     *backend.LeadsAPI
	company *CompanyService
	cache   *cache.Store
	opts    cache.Options
}

func NewLeadService(api *backend.LeadsAPI, company *CompanyService, store *cache.Store, opts cache.Options) *LeadService {
	return &LeadService{api: api, company: company, cache: store, opts: opts}
}

func leadListKey(filter backend.LeadFilter) cache.Key {
	return cache.NewKey(leadsResource, filter.AgentID, string(filter.Status))
}

func leadDetailKey(id string) cache.Key { return cache.NewKey("lead", id) }

func (s *LeadService) List(ctx context.Context, filter backend.LeadFilter) ([]model.Lead, error) {
	return cache.Read(ctx, s.cache, leadListKey(filter), s.opts, func(ctx context.Context) ([]model.Lead, error) {
		return s.api.List(ctx, filter)
	})
}

func (s *LeadService) Get(ctx context.Context, id string) (*model.Lead, error) {
	return cache.Read(ctx, s.cache, leadDetailKey(id), s.opts, func(ctx context.Context) (*model.Lead, error) {
		return s.api.Get(ctx, id)
	})
}

// Create validates client-side before any network call: a malformed phone
// or missing name never leaves the process.
func (s *LeadService) Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error) {
	if params.FirstName == "" {
		return nil, apperrors.MissingRequired("first_name")
	}
	if params.AgentID == "" {
		return nil, apperrors.MissingRequired("agent_id")
	}
	params.Phone = util.NormalizePhone(params.Phone)
	if !util.IsValidPhone(params.Phone) {
		return nil, apperrors.InvalidInput("phone", "must be in E.164 format, e.g. +14155550100")
	}

	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: s.leadListKeys(),
	}, func(ctx context.Context) (any, error) {
		return s.api.Create(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Lead), nil
}

func (s *LeadService) Update(ctx context.Context, id string, params model.UpdateLeadParams) (*model.Lead, error) {
	if params.Phone != nil {
		normalized := util.NormalizePhone(*params.Phone)
		if !util.IsValidPhone(normalized) {
			return nil, apperrors.InvalidInput("phone", "must be in E.164 format, e.g. +14155550100")
		}
		params.Phone = &normalized
	}

	keys := append(s.leadListKeys(), leadDetailKey(id))
	result, err := s.cache.Mutate(ctx, cache.Mutation{Keys: keys}, func(ctx context.Context) (any, error) {
		return s.api.Update(ctx, id, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Lead), nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	keys := append(s.leadListKeys(), leadDetailKey(id))
	_, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: keys,
		Patch: func(_ cache.Key, value any) any {
			leads, ok := value.([]model.Lead)
			if !ok {
				return value
			}
			next := make([]model.Lead, 0, len(leads))
			for _, l := range leads {
				if l.ID != id {
					next = append(next, l)
				}
			}
			return next
		},
	}, func(ctx context.Context) (any, error) {
		return nil, s.api.Delete(ctx, id)
	})
	return err
}

// Import uploads a CSV for an agent. The lead caches are invalidated
// whatever the per-row outcome: even a fully failed import may have
// consumed ids server-side.
func (s *LeadService) Import(ctx context.Context, agentID, filename string, file io.Reader, size int64, progress backend.ProgressFunc) (*model.ImportResult, error) {
	if agentID == "" {
		return nil, apperrors.MissingRequired("agent_id")
	}
	result, err := s.api.Import(ctx, agentID, filename, file, size, progress)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateResource(leadsResource)
	log.Info().
		Str("agentId", agentID).
		Int("imported", result.SuccessCount).
		Int("rejected", result.ErrorCount).
		Msg("lead import finished")
	return result, nil
}

// ScheduleCall moves a lead toward in_progress, passing through the
// verification gate when the account policy requires it:
//
//	unverified -> verification_requested -> verified -> scheduled
//
// The backend may also reject the schedule with a verification-required
// error the local policy flag did not anticipate; that restarts the same
// flow without another user action.
func (s *LeadService) ScheduleCall(ctx context.Context, leadID string) (*model.ScheduleResult, error) {
	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperrors.NotFound("Lead")
	}

	required, err := s.company.RequiresVerifiedLeads(ctx)
	if err != nil {
		return nil, err
	}
	if required && !lead.IsVerified {
		return s.startVerification(ctx, leadID)
	}

	result, err := s.scheduleMutation(ctx, leadID)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeVerificationRequired {
			log.Info().Str("leadId", leadID).Msg("backend requires verification, starting OTP flow")
			return s.startVerification(ctx, leadID)
		}
		return nil, err
	}
	return result, nil
}

// scheduleMutation performs the optimistic new -> in_progress transition.
func (s *LeadService) scheduleMutation(ctx context.Context, leadID string) (*model.ScheduleResult, error) {
	listPatch := cache.PatchSlice(
		func(l model.Lead) bool { return l.ID == leadID },
		func(l model.Lead) model.Lead { l.Status = model.LeadStatusInProgress; return l },
	)
	detailPatch := cache.PatchValue(func(l *model.Lead) *model.Lead {
		copied := *l
		copied.Status = model.LeadStatusInProgress
		return &copied
	})

	keys := append(s.leadListKeys(), leadDetailKey(leadID))
	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: keys,
		Patch: func(key cache.Key, value any) any {
			if _, ok := value.([]model.Lead); ok {
				return listPatch(key, value)
			}
			return detailPatch(key, value)
		},
	}, func(ctx context.Context) (any, error) {
		return s.api.Schedule(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return &model.ScheduleResult{Scheduled: true, Lead: result.(*model.Lead)}, nil
}

// startVerification issues the OTP request and marks the lead
// verification_requested in every cached copy.
func (s *LeadService) startVerification(ctx context.Context, leadID string) (*model.ScheduleResult, error) {
	verification, err := s.api.RequestVerification(ctx, leadID)
	if err != nil {
		return nil, err
	}

	s.patchVerificationState(leadID, model.VerificationRequested, false)
	return &model.ScheduleResult{
		VerificationRequired: true,
		Verification:         verification,
	}, nil
}

// ConfirmVerification submits the OTP. A correct code verifies the lead and
// automatically retries the original schedule-call; a wrong or expired code
// leaves the lead in verification_requested with a typed error for retry.
func (s *LeadService) ConfirmVerification(ctx context.Context, leadID, verificationID, code string) (*model.ScheduleResult, error) {
	if code == "" {
		return nil, apperrors.MissingRequired("code")
	}

	if _, err := s.api.ConfirmVerification(ctx, leadID, verificationID, code); err != nil {
		return nil, err
	}

	s.patchVerificationState(leadID, model.VerificationVerified, true)
	return s.scheduleMutation(ctx, leadID)
}

func (s *LeadService) Stop(ctx context.Context, leadID string) (*model.Lead, error) {
	listPatch := cache.PatchSlice(
		func(l model.Lead) bool { return l.ID == leadID },
		func(l model.Lead) model.Lead { l.Status = model.LeadStatusStopped; return l },
	)

	keys := append(s.leadListKeys(), leadDetailKey(leadID))
	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: keys,
		Patch: func(key cache.Key, value any) any {
			if _, ok := value.([]model.Lead); ok {
				return listPatch(key, value)
			}
			return cache.PatchValue(func(l *model.Lead) *model.Lead {
				copied := *l
				copied.Status = model.LeadStatusStopped
				return &copied
			})(key, value)
		},
	}, func(ctx context.Context) (any, error) {
		return s.api.Stop(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Lead), nil
}

// patchVerificationState rewrites the verification side channel in every
// cached copy of the lead, outside any transaction: verification state is
// backend-confirmed by the time this runs, never rolled back.
func (s *LeadService) patchVerificationState(leadID string, state model.VerificationState, verified bool) {
	listPatch := cache.PatchSlice(
		func(l model.Lead) bool { return l.ID == leadID },
		func(l model.Lead) model.Lead {
			l.Verification = state
			l.IsVerified = verified
			return l
		},
	)
	detailPatch := cache.PatchValue(func(l *model.Lead) *model.Lead {
		copied := *l
		copied.Verification = state
		copied.IsVerified = verified
		return &copied
	})

	keys := append(s.leadListKeys(), leadDetailKey(leadID))
	s.cache.Patch(keys, func(key cache.Key, value any) any {
		if _, ok := value.([]model.Lead); ok {
			return listPatch(key, value)
		}
		return detailPatch(key, value)
	})
}

// leadListKeys returns every cached lead list, whatever its filter, so list
// and detail entries never diverge after a mutation.
func (s *LeadService) leadListKeys() []cache.Key {
	return s.cache.ResourceKeys(leadsResource)
}
