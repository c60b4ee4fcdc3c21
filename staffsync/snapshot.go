package staffsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

// TokenSource mengembalikan bearer credential untuk satu panggilan.
// Dipanggil ulang setiap request supaya refresh kredensial langsung terpakai.
type TokenSource func() string

// Settings adalah pengaturan restoran dari snapshot.
type Settings struct {
	RestaurantName string    `json:"restaurantName"`
	Phone          string    `json:"phone"`
	UpiID          string    `json:"upiId"`
	GST            FlexFloat `json:"gst"`
}

// Snapshot adalah state awal yang otoritatif. Flag *OK membedakan
// koleksi yang berhasil diambil dari yang gagal; koleksi gagal tidak
// boleh menimpa state yang ada (partial snapshot lebih baik daripada
// tidak sama sekali).
type Snapshot struct {
	Tables     []TablePayload
	TablesOK   bool
	Sections   []SectionPayload
	SectionsOK bool
	Orders     []OrderPayload
	OrdersOK   bool
	Settings   *Settings
	SettingsOK bool
}

// Loader mengambil snapshot lewat request/response API.
type Loader struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *logrus.Logger
}

func NewLoader(baseURL string, httpClient *http.Client, token TokenSource, log *logrus.Logger) *Loader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{baseURL: baseURL, http: httpClient, token: token, log: log}
}

// Fetch mengambil tables, sections, orders, dan settings secara paralel.
// Kegagalan satu request tidak menggagalkan sisanya: snapshot yang
// kembali berisi apa pun yang berhasil, plus error gabungan untuk
// ditampilkan di layar.
func (l *Loader) Fetch(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs []error

	fail := func(what string, err error) {
		mu.Lock()
		errs = append(errs, fmt.Errorf("fetch %s: %w", what, err))
		mu.Unlock()
		l.log.Errorf("Error fetching %s: %v", what, err)
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		var tables []TablePayload
		if err := l.get(ctx, "/api/tables", &tables); err != nil {
			fail("tables", err)
			return
		}
		mu.Lock()
		snap.Tables, snap.TablesOK = tables, true
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		var sections []SectionPayload
		if err := l.get(ctx, "/api/sections", &sections); err != nil {
			fail("sections", err)
			return
		}
		mu.Lock()
		snap.Sections, snap.SectionsOK = sections, true
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		var orders []OrderPayload
		if err := l.get(ctx, "/api/tableorder", &orders); err != nil {
			fail("orders", err)
			return
		}
		mu.Lock()
		snap.Orders, snap.OrdersOK = orders, true
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		var settings Settings
		if err := l.get(ctx, "/api/settings", &settings); err != nil {
			fail("settings", err)
			return
		}
		mu.Lock()
		snap.Settings, snap.SettingsOK = &settings, true
		mu.Unlock()
	}()
	wg.Wait()

	return snap, errors.Join(errs...)
}

// envelope adalah bentuk respons API: {status, message, data}.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (l *Loader) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+path, nil)
	if err != nil {
		return err
	}
	// Token dibaca fresh per panggilan, bukan di-cache
	if tok := l.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
