package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"multibank/internal/models"
	"multibank/internal/repositories"
)

// autopayRulesKey is where the rule list lives in the settings store
const autopayRulesKey = "autopay.rules"

var ErrRuleNotFound = errors.New("auto-transfer rule not found")

// autopayService implements AutopayServiceInterface. Rules are kept as one
// JSON blob in the settings store, the same way the Mini-App keeps them in
// browser storage.
type autopayService struct {
	settingsRepo repositories.SettingsRepositoryInterface
	transfers    TransferServiceInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewAutopayService creates an autopay service
func NewAutopayService(
	settingsRepo repositories.SettingsRepositoryInterface,
	transfers TransferServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AutopayServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &autopayService{
		settingsRepo: settingsRepo,
		transfers:    transfers,
		metrics:      metrics,
		logger:       logger,
	}
}

// Rules loads all configured rules
func (s *autopayService) Rules() ([]models.AutoTransferRule, error) {
	raw, err := s.settingsRepo.Get(autopayRulesKey)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return []models.AutoTransferRule{}, nil
		}
		return nil, fmt.Errorf("failed to load auto-transfer rules: %w", err)
	}

	var rules []models.AutoTransferRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		// A corrupt blob loses the rules but must not wedge the feature.
		s.logger.Error("discarding unreadable auto-transfer rules", "error", err.Error())
		return []models.AutoTransferRule{}, nil
	}

	return rules, nil
}

// SaveRule validates and upserts one rule
func (s *autopayService) SaveRule(rule *models.AutoTransferRule) error {
	if rule == nil {
		return errors.New("rule cannot be nil")
	}

	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}
	if rule.NextRunAt.IsZero() {
		rule.NextRunAt = time.Now()
		rule.Advance(time.Now())
	}

	if err := rule.Validate(); err != nil {
		return err
	}

	rules, err := s.Rules()
	if err != nil {
		return err
	}

	replaced := false
	for i := range rules {
		if rules[i].ID == rule.ID {
			rules[i] = *rule
			replaced = true
			break
		}
	}
	if !replaced {
		rules = append(rules, *rule)
	}

	return s.storeRules(rules)
}

// DeleteRule removes a rule by ID
func (s *autopayService) DeleteRule(id string) error {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return ErrRuleNotFound
	}

	rules, err := s.Rules()
	if err != nil {
		return err
	}

	kept := rules[:0]
	for _, rule := range rules {
		if rule.ID != ruleID {
			kept = append(kept, rule)
		}
	}

	if len(kept) == len(rules) {
		return ErrRuleNotFound
	}

	return s.storeRules(kept)
}

// RunDue executes every enabled rule whose next run time has passed and
// advances its schedule. A rule whose transfer fails (say, insufficient
// funds) keeps its schedule advanced so it retries next period instead of
// hammering every pass.
func (s *autopayService) RunDue(now time.Time) (int, error) {
	rules, err := s.Rules()
	if err != nil {
		return 0, err
	}

	executed := 0
	for i := range rules {
		rule := &rules[i]
		if !rule.IsDue(now) {
			continue
		}

		_, err := s.transfers.Transfer(rule.FromProvider, rule.ToProvider, rule.Amount, "", "auto-transfer")
		if err != nil {
			s.metrics.IncrementCounter("autopay.run", map[string]string{"status": "failed"})
			s.logger.Warn("auto-transfer rule failed",
				"rule_id", rule.ID.String(),
				"from", rule.FromProvider,
				"to", rule.ToProvider,
				"error", err.Error(),
			)
		} else {
			s.metrics.IncrementCounter("autopay.run", map[string]string{"status": "success"})
			executed++
		}

		rule.Advance(now)
	}

	if err := s.storeRules(rules); err != nil {
		return executed, err
	}

	return executed, nil
}

func (s *autopayService) storeRules(rules []models.AutoTransferRule) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode auto-transfer rules: %w", err)
	}

	if err := s.settingsRepo.Set(autopayRulesKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store auto-transfer rules: %w", err)
	}

	return nil
}
