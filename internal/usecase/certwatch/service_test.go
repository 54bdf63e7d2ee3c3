package certwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wharf/internal/boundaries/out/mocks"
	"github.com/bnema/wharf/internal/domain"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func stagingPolicy(subject string) []domain.CaddyTLSPolicy {
	return []domain.CaddyTLSPolicy{{
		Subjects: []string{subject},
		Issuers: []domain.CaddyIssuer{{
			Module: "acme",
			CA:     "https://acme-staging-v02.api.letsencrypt.org/directory",
		}},
	}}
}

func TestCheckDomain_CleanLogs(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	logs.EXPECT().Tail(mock.Anything, 200, 10*time.Minute).
		Return("2026/08/30 serving web.example.com\n", nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return([]domain.CaddyTLSPolicy{{
		Subjects: []string{"web.example.com"},
		Issuers:  []domain.CaddyIssuer{{Module: "acme", Email: "ops@example.com"}},
	}}, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.False(t, report.HasErrors)
	assert.Nil(t, report.Issue)
	assert.Equal(t, domain.CAModeProduction, report.CAMode)
}

func TestCheckDomain_RateLimitPrecedesFailure(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	// Both family signatures appear; rate limiting must win.
	window := "challenge failed for web.example.com\n" +
		"urn:ietf:params:acme:error:rateLimited: too many certificates\n"
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return(window, nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	require.NotNil(t, report.Issue)
	assert.Equal(t, "rate_limit", report.Issue.Kind)
	assert.Equal(t, domain.CertSeverityWarning, report.Issue.Severity)
	assert.True(t, report.HasErrors)
}

func TestCheckDomain_FailureSignatureIsError(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	window := "could not get certificate from issuer for web.example.com\n"
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return(window, nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	require.NotNil(t, report.Issue)
	assert.Equal(t, "cert_failure", report.Issue.Kind)
	assert.Equal(t, domain.CertSeverityError, report.Issue.Severity)
}

func TestCheckDomain_RoutineIssuanceChatterIsHealthy(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	// A successful acquisition mentions both the domain and the ACME
	// endpoint; neither is a failure signature.
	window := "obtaining certificate for web.example.com\n" +
		"using ACME account https://acme-v02.api.letsencrypt.org/acme/acct/123\n" +
		"certificate obtained successfully for web.example.com\n"
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return(window, nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.False(t, report.HasErrors)
	assert.Nil(t, report.Issue)
}

func TestCheckDomain_SignatureWithoutDomainIgnored(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	// The failure concerns another domain; the checked one stays healthy.
	window := "challenge failed for other.example.net\n"
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return(window, nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.False(t, report.HasErrors)
	assert.Nil(t, report.Issue)
}

func TestCheckDomain_MatchingIsCaseInsensitive(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	window := "Challenge FAILED for WEB.example.COM\n"
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return(window, nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	require.NotNil(t, report.Issue)
	assert.Equal(t, "cert_failure", report.Issue.Kind)
}

func TestCheckDomain_StagingCA(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(stagingPolicy("web.example.com"), nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.Equal(t, domain.CAModeStaging, report.CAMode)
	assert.False(t, report.HasErrors)
}

func TestCheckDomain_NoPolicyForDomain(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(stagingPolicy("other.example.com"), nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.Equal(t, domain.CAModeUnknown, report.CAMode)
}

func TestCheckDomain_LogSourceUnavailable(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	// Log scan and CA classification are independent: one failing does not
	// suppress the other.
	logs.EXPECT().Tail(mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("container not found"))
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(stagingPolicy("web.example.com"), nil)

	svc := NewService(logs, control)
	report := svc.CheckDomain(ctx, "web.example.com")

	assert.False(t, report.HasErrors)
	assert.Equal(t, domain.CAModeStaging, report.CAMode)
}

func TestCheckDomain_CustomWindow(t *testing.T) {
	logs := mocks.NewMockProxyLogSource(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	logs.EXPECT().Tail(mock.Anything, 50, time.Minute).Return("", nil)
	control.EXPECT().GetTLSPolicies(mock.Anything).Return(nil, nil)

	svc := NewService(logs, control, WithWindow(50, time.Minute))
	svc.CheckDomain(ctx, "web.example.com")
}
