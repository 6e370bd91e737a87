package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/teamscope-ai/teamscope/backend/pkg/ai"
	"github.com/teamscope-ai/teamscope/backend/pkg/analysis"
	"github.com/teamscope-ai/teamscope/backend/pkg/leaselock"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"
	teamstore "github.com/teamscope-ai/teamscope/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyzeTeamMsg is the payload queued for each analysis run.
type AnalyzeTeamMsg struct {
	Message       string `json:"message"`
	TeamID        string `json:"team_id"`
	CorrelationID string `json:"correlation_id"`
}

// ProcessAnalyzeMessage runs one team analysis end to end: load the
// roster, generate per-contact profiles and the team analysis, persist
// both. A per-team lease serializes concurrent runs; a busy lease is
// returned as an error so the message lands on the retry queue.
func ProcessAnalyzeMessage(
	ctx context.Context,
	aiClient ai.TeamAIClient,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(AnalyzeTeamMsg)
	if err := json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}
	if data.TeamID == "" {
		logger.Warn("[Queue] Analyze message without team id, dropping")
		return nil
	}

	locker := leaselock.New(conn)
	err := locker.WithLease(ctx, "team_analysis:"+data.TeamID, leaselock.Options{
		TTL:          10 * time.Minute,
		HolderPrefix: "worker_",
	}, func(ctx context.Context) error {
		return runAnalysis(ctx, aiClient, conn, data)
	})
	if errors.Is(err, leaselock.ErrBusy) {
		return fmt.Errorf("analysis already running for team %s: %w", data.TeamID, err)
	}
	return err
}

func runAnalysis(
	ctx context.Context,
	aiClient ai.TeamAIClient,
	conn *pgxpool.Pool,
	data *AnalyzeTeamMsg,
) error {
	st := teamstore.NewTeamDBStorage(conn)

	contacts, err := st.ListContacts(ctx, data.TeamID)
	if err != nil {
		return fmt.Errorf("failed to load contacts for team %s: %w", data.TeamID, err)
	}
	if len(contacts) == 0 {
		logger.Warn("[Queue] Team has no contacts, skipping analysis", "team_id", data.TeamID, "correlation_id", data.CorrelationID)
		return nil
	}

	logger.Info("[Queue] Generating profiles", "team_id", data.TeamID, "contacts", len(contacts))
	profiles, err := analysis.GenerateProfiles(ctx, aiClient, contacts)
	if err != nil {
		return err
	}
	if err := st.SaveProfiles(ctx, data.TeamID, profiles); err != nil {
		return fmt.Errorf("failed to save profiles for team %s: %w", data.TeamID, err)
	}

	logger.Info("[Queue] Generating team analysis", "team_id", data.TeamID)
	result, payload, err := analysis.GenerateTeamAnalysis(ctx, aiClient, contacts, profiles)
	if err != nil {
		return err
	}

	err = st.SaveAnalysis(ctx, store.AnalysisRecord{
		TeamID:        data.TeamID,
		CorrelationID: data.CorrelationID,
		Payload:       payload,
		Analysis:      result,
	})
	if err != nil {
		return fmt.Errorf("failed to save analysis for team %s: %w", data.TeamID, err)
	}

	logger.Info(
		"[Queue] Analysis complete",
		"team_id", data.TeamID,
		"correlation_id", data.CorrelationID,
		"cohesion", result.CohesionScore,
		"tension", result.TensionLevel,
	)
	return nil
}
