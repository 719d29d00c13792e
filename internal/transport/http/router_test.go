package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"house-edge/internal/config"
	"house-edge/internal/store"
	"house-edge/internal/testutil"
	httptransport "house-edge/internal/transport/http"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st, cleanup := testutil.OpenTestStore(t)
	cfg := config.ServerConfig{
		SessionTTLHours:      1,
		StartingBalanceCents: 10000,
	}
	srv := httptest.NewServer(httptransport.NewRouter(st, cfg))
	t.Cleanup(func() {
		srv.Close()
		cleanup()
	})
	return srv, st
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := c.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, c *http.Client, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func register(t *testing.T, c *http.Client, base, username, password string) {
	t.Helper()
	resp, body := postJSON(t, c, base+"/register", map[string]string{"username": username, "password": password})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d body %v", resp.StatusCode, body)
	}
}

func login(t *testing.T, c *http.Client, base, username, password string) {
	t.Helper()
	resp, body := postJSON(t, c, base+"/login", map[string]string{"username": username, "password": password})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d body %v", resp.StatusCode, body)
	}
}

func TestRegisterLoginBalanceFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "alice", "pw")
	login(t, c, srv.URL, "alice", "pw")

	resp, body := getJSON(t, c, srv.URL+"/balance")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("balance: status %d body %v", resp.StatusCode, body)
	}
	if body["balance"] != float64(10000) {
		t.Fatalf("balance = %v, want 10000", body["balance"])
	}
}

func TestDuplicateRegister(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "bob", "pw")
	resp, body := postJSON(t, c, srv.URL+"/register", map[string]string{"username": "bob", "password": "pw"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["message"] != "Username already exists" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "carol", "pw")
	resp, body := postJSON(t, c, srv.URL+"/login", map[string]string{"username": "carol", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Invalid credentials" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/balance"},
		{http.MethodGet, "/history"},
		{http.MethodPost, "/blackjack"},
		{http.MethodPost, "/plinko"},
		{http.MethodPost, "/owner/add_balance"},
	} {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, bytes.NewReader([]byte("{}")))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := c.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestBlackjackWagerSettles(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "dave", "pw")
	login(t, c, srv.URL, "dave", "pw")

	resp, body := postJSON(t, c, srv.URL+"/blackjack", map[string]int64{"bet": 4000})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("blackjack: status %d body %v", resp.StatusCode, body)
	}
	result, _ := body["result"].(string)
	balance, _ := body["balance"].(float64)
	switch result {
	case "win":
		if balance != 14000 {
			t.Fatalf("win balance = %v, want 14000", balance)
		}
	case "lose":
		if balance != 6000 {
			t.Fatalf("lose balance = %v, want 6000", balance)
		}
	default:
		t.Fatalf("unexpected result %q", result)
	}
	if _, ok := body["player_score"]; !ok {
		t.Fatalf("missing player_score in %v", body)
	}

	// The settlement shows up in history.
	resp, body = getJSON(t, c, srv.URL+"/history")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status %d", resp.StatusCode)
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("history items = %d, want 1", len(items))
	}
}

func TestWagerRejectsBadBets(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "erin", "pw")
	login(t, c, srv.URL, "erin", "pw")

	resp, body := postJSON(t, c, srv.URL+"/plinko", map[string]int64{"bet": 0})
	if resp.StatusCode != http.StatusBadRequest || body["message"] != "Invalid bet" {
		t.Fatalf("zero bet: status %d body %v", resp.StatusCode, body)
	}
	resp, body = postJSON(t, c, srv.URL+"/plinko", map[string]int64{"bet": 999999})
	if resp.StatusCode != http.StatusBadRequest || body["message"] != "Insufficient balance" {
		t.Fatalf("oversized bet: status %d body %v", resp.StatusCode, body)
	}
}

func TestOwnerRoutesForbiddenForPlayers(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "frank", "pw")
	login(t, c, srv.URL, "frank", "pw")

	resp, body := postJSON(t, c, srv.URL+"/owner/add_balance", map[string]any{"username": "frank", "amount": 100})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body %v)", resp.StatusCode, body)
	}
}

func TestOwnerAddBalance(t *testing.T) {
	srv, st := newTestServer(t)

	// Seed an owner directly; /admin/login must accept it and /login-created
	// players must not pass the owner gate.
	ownerClient := newClient(t)
	register(t, ownerClient, srv.URL, "boss", "ownerpw")
	if _, err := st.Pool.Exec(context.Background(), `UPDATE accounts SET is_owner = TRUE WHERE username = 'boss'`); err != nil {
		t.Fatalf("promote owner: %v", err)
	}
	resp, body := postJSON(t, ownerClient, srv.URL+"/admin/login", map[string]string{"username": "boss", "password": "ownerpw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d body %v", resp.StatusCode, body)
	}

	playerClient := newClient(t)
	register(t, playerClient, srv.URL, "gina", "pw")

	resp, body = postJSON(t, ownerClient, srv.URL+"/owner/add_balance", map[string]any{"username": "gina", "amount": 2500})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add balance: status %d body %v", resp.StatusCode, body)
	}
	if body["message"] != "Balance updated" || body["new_balance"] != float64(12500) {
		t.Fatalf("unexpected body %v", body)
	}

	// Unknown target account.
	resp, body = postJSON(t, ownerClient, srv.URL+"/owner/add_balance", map[string]any{"username": "ghost", "amount": 100})
	if resp.StatusCode != http.StatusNotFound || body["message"] != "User not found" {
		t.Fatalf("unknown user: status %d body %v", resp.StatusCode, body)
	}

	// Corrections by negative credit are not allowed.
	resp, _ = postJSON(t, ownerClient, srv.URL+"/owner/add_balance", map[string]any{"username": "gina", "amount": -100})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative amount: status %d, want 400", resp.StatusCode)
	}

	resp, body = getJSON(t, ownerClient, srv.URL+"/owner/accounts")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accounts: status %d", resp.StatusCode)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("accounts = %d, want 2", len(items))
	}
}

func TestAdminLoginRejectsPlayers(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "henry", "pw")
	resp, body := postJSON(t, c, srv.URL+"/admin/login", map[string]string{"username": "henry", "password": "pw"})
	if resp.StatusCode != http.StatusUnauthorized || body["message"] != "Invalid credentials" {
		t.Fatalf("status %d body %v", resp.StatusCode, body)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "iris", "pw")
	login(t, c, srv.URL, "iris", "pw")

	resp, body := postJSON(t, c, srv.URL+"/logout", map[string]string{})
	if resp.StatusCode != http.StatusOK || body["message"] != "Logged out" {
		t.Fatalf("logout: status %d body %v", resp.StatusCode, body)
	}

	resp, err := c.Get(srv.URL + "/balance")
	if err != nil {
		t.Fatalf("balance after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 after logout", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK || body["ok"] != true {
		t.Fatalf("status %d body %v", resp.StatusCode, body)
	}
}

func TestPlinkoPayoutBands(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t)

	register(t, c, srv.URL, "judy", "pw")
	login(t, c, srv.URL, "judy", "pw")

	resp, body := postJSON(t, c, srv.URL+"/plinko", map[string]int64{"bet": 1000})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("plinko: status %d body %v", resp.StatusCode, body)
	}
	result, _ := body["result"].(string)
	balance, _ := body["balance"].(float64)
	want := map[string]float64{
		"lose":    9000,
		"win":     10500,
		"jackpot": 19000,
	}
	exp, ok := want[result]
	if !ok {
		t.Fatalf("unexpected result %q", result)
	}
	if balance != exp {
		t.Fatalf("%s balance = %v, want %v", result, balance, exp)
	}
}
