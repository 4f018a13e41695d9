package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kinetree/kinetree/pkg/cache"
	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/robot"
	"github.com/kinetree/kinetree/pkg/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrModelNotFound):
		status = http.StatusNotFound
	case errors.Is(err, robot.ErrSizeMismatch),
		errors.Is(err, link.ErrOutOfRange),
		errors.Is(err, model.ErrNoRoot),
		errors.Is(err, model.ErrMultipleRoots),
		errors.Is(err, model.ErrUnknownParent),
		errors.Is(err, model.ErrDuplicateLink),
		errors.Is(err, model.ErrUnknownJointType),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// errBadRequest marks malformed client input.
var errBadRequest = errors.New("bad request")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"models": names})
}

func (s *Server) handlePutModel(w http.ResponseWriter, r *http.Request) {
	var doc model.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, fmt.Errorf("%w: decoding model: %v", errBadRequest, err))
		return
	}
	doc.Name = chi.URLParam(r, "name")

	// Reject documents that cannot form a valid tree before storing.
	tree, err := doc.ToTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":  doc.Name,
		"links": len(doc.Links),
		"dof":   tree.DOF(),
	})
}

func (s *Server) handleGetModel(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fkRequest struct {
	Angles []float64 `json:"angles"`
}

type posePoint struct {
	Link     string     `json:"link"`
	Joint    string     `json:"joint,omitempty"`
	Position [3]float64 `json:"position"`
}

type fkResponse struct {
	Model string      `json:"model"`
	DOF   int         `json:"dof"`
	Poses []posePoint `json:"poses"`
}

func (s *Server) handleForwardKinematics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	var req fkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: decoding angles: %v", errBadRequest, err))
		return
	}

	doc, err := s.store.Get(ctx, name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	key, cacheable := s.poseKey(doc, req.Angles)
	if cacheable {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	tree, err := doc.ToTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := tree.SetJointAngles(req.Angles); err != nil {
		s.writeError(w, err)
		return
	}

	transforms := tree.ComputeLinkTransforms()
	nodes := tree.Nodes()
	resp := fkResponse{Model: name, DOF: tree.DOF(), Poses: make([]posePoint, len(nodes))}
	for i, n := range nodes {
		p := transforms[i].Position()
		pose := posePoint{Link: n.Data.Name, Position: [3]float64{p.X, p.Y, p.Z}}
		if n.Data.Joint != nil {
			pose.Joint = n.Data.JointName()
		}
		resp.Poses[i] = pose
	}

	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, data, poseCacheTTL); err != nil {
				s.logger.Warn("caching pose result", "err", err)
			}
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// poseKey derives the cache key for a pose computation from the model
// content and the requested angles.
func (s *Server) poseKey(doc *model.Document, angles []float64) (string, bool) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}
	return cache.PoseKey(cache.Hash(data), angles), true
}

type chainSummary struct {
	Name   string   `json:"name"`
	DOF    int      `json:"dof"`
	Links  int      `json:"links"`
	Joints []string `json:"joints"`
}

type chainsResponse struct {
	Model  string         `json:"model"`
	Chains []chainSummary `json:"chains"`
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	opts := robot.ChainOptions{MinJoints: robot.DefaultMinJoints}
	var err error
	if opts.DOFLimit, err = intQuery(r, "dof_limit", 0); err != nil {
		s.writeError(w, err)
		return
	}
	if opts.MinJoints, err = intQuery(r, "min_joints", robot.DefaultMinJoints); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.store.Get(ctx, name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var key string
	if data, err := json.Marshal(doc); err == nil {
		key = cache.ChainKey(cache.Hash(data), opts.DOFLimit, opts.MinJoints)
		if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	tree, err := doc.ToTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	chains, err := robot.ExtractChains(tree, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := chainsResponse{Model: name, Chains: make([]chainSummary, len(chains))}
	for i, c := range chains {
		resp.Chains[i] = chainSummary{
			Name:   c.Name,
			DOF:    c.DOF(),
			Links:  len(c.Nodes()),
			Joints: c.JointNames(),
		}
	}

	if key != "" {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, data, poseCacheTTL); err != nil {
				s.logger.Warn("caching chain result", "err", err)
			}
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, key)
	}
	return n, nil
}
