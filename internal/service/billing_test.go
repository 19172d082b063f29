package service

import (
	"context"
	"testing"
	"time"

	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/pkg/crypto"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

func newBillingTestEnv(t *testing.T) (*memState, *BillingService) {
	t.Helper()
	st := newMemState()
	enc, err := crypto.NewEncryptor(testEncryptionKey)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}
	return st, NewBillingService(memClaims{st}, memSubs{st}, enc)
}

func TestConfirmActivatesInertSubscription(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	claimID := st.seedClaim("acct-1")

	day := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	sub, err := svc.Confirm(context.Background(), claimID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !sub.Active {
		t.Error("subscription not active after confirmation")
	}
	want := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	if sub.ExpiresOn == nil || !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v, want %v", sub.ExpiresOn, want)
	}
	if !st.claims[claimID].Confirmed {
		t.Error("claim not marked confirmed")
	}
}

func TestConfirmStacksWhileActive(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	first := st.seedClaim("acct-1")
	second := st.seedClaim("acct-1")

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, first); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	sub, err := svc.Confirm(ctx, second)
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}

	// The second payment lands while the first period still runs, so the 30
	// days stack on top of the existing expiry instead of restarting.
	want := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)
	if sub.ExpiresOn == nil || !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v, want %v", sub.ExpiresOn, want)
	}
}

func TestConfirmAfterExpiryRestartsWindow(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	expired := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	st.subs["acct-1"] = &domain.Subscription{AccountID: "acct-1", Active: true, ExpiresOn: &expired}
	claimID := st.seedClaim("acct-1")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	sub, err := svc.Confirm(context.Background(), claimID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	want := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	if sub.ExpiresOn == nil || !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v after lapse, want fresh window ending %v", sub.ExpiresOn, want)
	}
}

func TestConfirmTwiceIsNoOp(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	claimID := st.seedClaim("acct-1")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }
	ctx := context.Background()

	first, err := svc.Confirm(ctx, claimID)
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	again, err := svc.Confirm(ctx, claimID)
	if err != nil {
		t.Fatalf("re-Confirm: %v", err)
	}
	if !again.ExpiresOn.Equal(*first.ExpiresOn) {
		t.Errorf("re-confirming moved expiry from %v to %v", first.ExpiresOn, again.ExpiresOn)
	}
}

func TestConfirmUnknownClaim(t *testing.T) {
	_, svc := newBillingTestEnv(t)
	_, err := svc.Confirm(context.Background(), "no-such-claim")
	if appErr, ok := domain.AsAppError(err); !ok || appErr.Code != 404 {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestConfirmBulkIsolatesFailures(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	st.seedOwner("acct-2")
	good1 := st.seedClaim("acct-1")
	good2 := st.seedClaim("acct-2")

	resp, err := svc.ConfirmBulk(context.Background(), &domain.BulkConfirmRequest{
		ClaimIDs: []string{good1, "bogus", good2},
	})
	if err != nil {
		t.Fatalf("ConfirmBulk: %v", err)
	}
	if resp.Confirmed != 2 {
		t.Errorf("confirmed %d, want 2", resp.Confirmed)
	}
	if len(resp.Failed) != 1 || resp.Failed[0] != "bogus" {
		t.Errorf("failed = %v, want [bogus]", resp.Failed)
	}
	if !st.claims[good1].Confirmed || !st.claims[good2].Confirmed {
		t.Error("valid claims not confirmed despite the failed one")
	}
}

func TestConfirmBulkCountsAlreadyConfirmedAsZero(t *testing.T) {
	st, svc := newBillingTestEnv(t)
	st.seedOwner("acct-1")
	claimID := st.seedClaim("acct-1")
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, claimID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	resp, err := svc.ConfirmBulk(ctx, &domain.BulkConfirmRequest{ClaimIDs: []string{claimID}})
	if err != nil {
		t.Fatalf("ConfirmBulk: %v", err)
	}
	if resp.Confirmed != 0 || len(resp.Failed) != 0 {
		t.Errorf("got confirmed=%d failed=%v, want 0 and none", resp.Confirmed, resp.Failed)
	}
}

func TestSubmitClaimEncryptsUPIIDAtRest(t *testing.T) {
	st, svc := newBillingTestEnv(t)

	claim, err := svc.SubmitClaim(context.Background(), "acct-1", &domain.ClaimRequest{
		UPIName: "Asha", UPIID: "asha@okbank",
	})
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if claim.UPIID != "asha@okbank" {
		t.Errorf("response UPI ID = %q, want plaintext back", claim.UPIID)
	}

	stored := st.claims[claim.ID]
	if stored.UPIID == "asha@okbank" {
		t.Error("UPI ID stored in plaintext")
	}

	claims, err := svc.ListClaims(context.Background())
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(claims) != 1 || claims[0].UPIID != "asha@okbank" {
		t.Errorf("listed claims = %+v, want one with decrypted UPI ID", claims)
	}
}

func TestSubmitClaimRequiresFields(t *testing.T) {
	_, svc := newBillingTestEnv(t)
	_, err := svc.SubmitClaim(context.Background(), "acct-1", &domain.ClaimRequest{UPIName: "Asha"})
	if appErr, ok := domain.AsAppError(err); !ok || appErr.Code != 422 {
		t.Fatalf("got %v, want validation error", err)
	}
}
