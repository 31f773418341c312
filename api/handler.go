// Package api - HTTP handlers
// Handlers decode input, call one adapter operation and encode the result.
// All decision logic lives in the adapters.
package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"cloud-adapter/clouds"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// handleResolve handles POST /resolve
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.ResourceRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if !req.DiskTier.IsValid() {
		s.writeError(w, "VALIDATION_ERROR", "invalid disk_tier: "+string(req.DiskTier), http.StatusBadRequest)
		return
	}

	p, err := s.provider(req.Cloud)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	result, err := p.Resolve(req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, &ResolveResponse{
		RequestID:       generateRequestID(),
		Timestamp:       time.Now().UTC(),
		Status:          resolveStatus(result),
		Cloud:           p.Name(),
		Resources:       result.Resources,
		FuzzyCandidates: result.FuzzyCandidates,
		Hint:            result.Hint,
		Metadata: &ResponseMetadata{
			InputHash:     computeInputHash(req),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleRegions handles GET /regions
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	useSpot, err := boolParam(q, "use_spot")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	accs, err := types.ParseAccelerators(q.Get("accelerators"))
	if err != nil {
		s.writeDomainError(w, errors.Wrap(errors.TypeInput, "accelerators", err))
		return
	}
	p, err := s.provider(types.Provider(q.Get("cloud")))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	instanceType := q.Get("instance_type")
	if instanceType == "" {
		s.writeError(w, "VALIDATION_ERROR", "instance_type is required", http.StatusBadRequest)
		return
	}
	regions, err := p.RegionsWithOffering(instanceType, accs, useSpot, q.Get("region"), q.Get("zone"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, &RegionsResponse{
		Cloud:        p.Name(),
		InstanceType: instanceType,
		UseSpot:      useSpot,
		Regions:      regions,
	}, http.StatusOK)
}

// handleCost handles GET /cost. Without hours the estimate covers one
// billing month.
func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := costInput(q)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	p, err := s.provider(types.Provider(q.Get("cloud")))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	cost, err := clouds.EstimateRunCost(p, in)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, &CostResponse{
		Cloud:              p.Name(),
		InstanceType:       in.Resource.InstanceType,
		Region:             in.Resource.Region,
		Nodes:              in.Nodes,
		Hours:              in.Hours.String(),
		InstanceHourly:     usd(cost.InstanceHourly),
		AcceleratorsHourly: usd(cost.AcceleratorsHourly),
		Compute:            usd(cost.Compute),
		Egress:             usd(cost.Egress),
		Total:              usd(cost.Total),
	}, http.StatusOK)
}

// handleFeatures handles GET /features
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	p, err := s.provider(types.Provider(r.URL.Query().Get("cloud")))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, &FeaturesResponse{
		Cloud:                p.Name(),
		Unsupported:          p.UnsupportedFeatures(types.ResourceRequest{}),
		MaxClusterNameLength: p.MaxClusterNameLength(),
	}, http.StatusOK)
}

// handleCredentials handles GET /credentials
func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	p, err := s.provider(types.Provider(r.URL.Query().Get("cloud")))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	ctx, cancel := s.probeContext(r.Context())
	defer cancel()

	compute, err := p.CheckCredentials(ctx)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	storage, err := p.CheckStorageCredentials(ctx)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, &CredentialsResponse{
		Cloud:   p.Name(),
		Compute: compute,
		Storage: storage,
	}, http.StatusOK)
}

func resolveStatus(result types.FeasibilityResult) string {
	switch {
	case result.Feasible():
		return "feasible"
	case len(result.FuzzyCandidates) > 0:
		return "fuzzy"
	default:
		return "infeasible"
	}
}

func costInput(q url.Values) (clouds.RunCostInput, error) {
	instanceType := q.Get("instance_type")
	if instanceType == "" {
		return clouds.RunCostInput{}, errors.Input("instance_type is required")
	}
	useSpot, err := boolParam(q, "use_spot")
	if err != nil {
		return clouds.RunCostInput{}, err
	}

	in := clouds.RunCostInput{
		Resource: types.NewLaunchableResource(types.ResourceRequest{
			InstanceType: instanceType,
			UseSpot:      useSpot,
			Region:       q.Get("region"),
			Zone:         q.Get("zone"),
		}),
		Nodes: 1,
		Hours: decimal.NewFromInt(clouds.HoursPerMonth),
	}
	if v := q.Get("nodes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return clouds.RunCostInput{}, errors.Wrap(errors.TypeInput, "nodes", err)
		}
		in.Nodes = n
	}
	if v := q.Get("hours"); v != "" {
		h, err := decimal.NewFromString(v)
		if err != nil {
			return clouds.RunCostInput{}, errors.Wrap(errors.TypeInput, "hours", err)
		}
		in.Hours = h
	}
	if v := q.Get("egress_gb"); v != "" {
		gb, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return clouds.RunCostInput{}, errors.Wrap(errors.TypeInput, "egress_gb", err)
		}
		in.EgressGB = gb
	}
	return in, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.TypeInput, key, err)
	}
	return b, nil
}
