package api

import (
	"net/http"
	"testing"
)

func TestUpdateMaterialAccumulatesCountersAndCoins(t *testing.T) {
	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")

	var resp UpdateMaterialResponse
	for i := 1; i <= 3; i++ {
		rr := doRequest(t, srv, http.MethodPost, "/api/users/update-material", alice.Token, map[string]string{
			"userId":        alice.User.ID,
			"materialField": "plasticMaterial",
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("scan %d status = %d, body=%q", i, rr.Code, rr.Body.String())
		}
		decodeResponse(t, rr, &resp)

		if resp.UpdatedCount != i {
			t.Fatalf("scan %d updatedCount = %d, want %d", i, resp.UpdatedCount, i)
		}
		if resp.Coins != 2*i {
			t.Fatalf("scan %d coins = %d, want %d", i, resp.Coins, 2*i)
		}
		if resp.CoinReward != 2 {
			t.Fatalf("scan %d coinReward = %d, want 2", i, resp.CoinReward)
		}
	}
}

func TestUpdateMaterialRewardTable(t *testing.T) {
	rewards := map[string]int{
		"plasticMaterial": 2,
		"paperMaterial":   1,
		"glassMaterial":   4,
		"organicMaterial": 3,
		"metalMaterial":   5,
	}

	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")

	wantCoins := 0
	for field, reward := range rewards {
		rr := doRequest(t, srv, http.MethodPost, "/api/users/update-material", alice.Token, map[string]string{
			"userId":        alice.User.ID,
			"materialField": field,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d, body=%q", field, rr.Code, rr.Body.String())
		}

		var resp UpdateMaterialResponse
		decodeResponse(t, rr, &resp)
		if resp.CoinReward != reward {
			t.Fatalf("%s coinReward = %d, want %d", field, resp.CoinReward, reward)
		}
		if resp.UpdatedCount != 1 {
			t.Fatalf("%s updatedCount = %d, want 1", field, resp.UpdatedCount)
		}
		wantCoins += reward
		if resp.Coins != wantCoins {
			t.Fatalf("%s coins = %d, want %d", field, resp.Coins, wantCoins)
		}
	}
}

func TestUpdateMaterialRejectsUnknownField(t *testing.T) {
	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/users/update-material", alice.Token, map[string]string{
		"userId":        alice.User.ID,
		"materialField": "goldMaterial",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestUpdateMaterialUnknownUser(t *testing.T) {
	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/users/update-material", alice.Token, map[string]string{
		"userId":        "usr_000000000000000000000000",
		"materialField": "plasticMaterial",
	})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusNotFound, rr.Body.String())
	}
}

func TestGetProfileAggregatesEvents(t *testing.T) {
	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")
	bob := registerTestUser(t, srv, "bob", "bob@example.com")

	created := createTestEvent(t, srv, alice.Token, "Alice cleanup")
	joined := createTestEvent(t, srv, bob.Token, "Bob cleanup")

	rr := doRequest(t, srv, http.MethodPost, "/api/events/"+joined+"/join", alice.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("join status = %d, body=%q", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/users/"+alice.User.ID, bob.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body=%q", rr.Code, rr.Body.String())
	}

	var resp ProfileResponse
	decodeResponse(t, rr, &resp)
	if !resp.Success {
		t.Fatal("profile success = false")
	}
	if resp.User.Username != "alice" {
		t.Fatalf("profile username = %q, want alice", resp.User.Username)
	}
	if len(resp.CreatedEvents) != 1 || resp.CreatedEvents[0].ID != created {
		t.Fatalf("createdEvents = %+v, want [%s]", resp.CreatedEvents, created)
	}
	if len(resp.ParticipatedEvents) != 1 || resp.ParticipatedEvents[0].ID != joined {
		t.Fatalf("participatedEvents = %+v, want [%s]", resp.ParticipatedEvents, joined)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	srv := newTestServer(t)
	alice := registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodGet, "/api/users/usr_000000000000000000000000", alice.Token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusNotFound, rr.Body.String())
	}
}
