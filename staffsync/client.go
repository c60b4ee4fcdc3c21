package staffsync

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Config menyusun satu client sinkronisasi dashboard.
type Config struct {
	BaseURL string // http(s)://host untuk request/response API
	WSURL   string // ws(s)://host/ws untuk live feed
	Token   TokenSource
	HTTP    *http.Client
	Logger  *logrus.Logger

	// OnSnapshotError dipanggil saat snapshot (awal maupun re-snapshot
	// setelah reconnect) gagal sebagian/seluruhnya. Error ini untuk
	// ditampilkan di layar, bukan fatal.
	OnSnapshotError func(error)
}

// Client merangkai Loader, Channel, dan Store sesuai alur layar:
// snapshot dulu, baru live feed dipercaya. Setiap reconnect memicu
// re-snapshot, supaya event yang hilang selama gap tidak meninggalkan
// state drift.
type Client struct {
	cfg     Config
	log     *logrus.Logger
	loader  *Loader
	channel *Channel
	store   *Store

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	c := &Client{
		cfg:    cfg,
		log:    log,
		loader: NewLoader(cfg.BaseURL, cfg.HTTP, cfg.Token, log),
		store:  NewStore(log),
	}
	c.channel = NewChannel(c.feedURL, log)
	c.channel.OnEvent(c.store.Apply)
	c.channel.OnOpen(func(reconnect bool) {
		if !reconnect {
			return
		}
		// Pesan yang datang selama gap hilang permanen; snapshot ulang
		// adalah satu-satunya cara mengembalikan konsistensi
		c.log.Info("Reconnected to live feed, refreshing snapshot")
		c.refreshSnapshot()
	})
	return c
}

// feedURL dibangun ulang setiap dial supaya token selalu fresh.
func (c *Client) feedURL() string {
	raw := c.cfg.WSURL
	if c.cfg.Token == nil {
		return raw
	}
	tok := c.cfg.Token()
	if tok == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}

// Start mengambil snapshot awal lalu membuka live feed. Error snapshot
// dikembalikan untuk ditampilkan; koleksi yang berhasil tetap diterapkan
// dan feed tetap dibuka.
func (c *Client) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	snap, err := c.loader.Fetch(c.ctx)
	c.store.Init(snap)

	c.channel.Connect()
	return err
}

func (c *Client) refreshSnapshot() {
	snap, err := c.loader.Fetch(c.ctx)
	c.store.Init(snap)
	if err != nil {
		c.log.Errorf("Snapshot refresh failed: %v", err)
		if c.cfg.OnSnapshotError != nil {
			c.cfg.OnSnapshotError(err)
		}
	}
}

// Stop adalah teardown layar: batalkan request yang masih jalan, tutup
// channel tanpa reconnect, dan buang hasil snapshot yang datang telat.
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.channel.Close()
	c.store.Dispose()
}

// Store mengembalikan state holder untuk dibaca layer tampilan.
func (c *Client) Store() *Store {
	return c.store
}

// Channel mengekspos state koneksi untuk indikator status.
func (c *Client) Channel() *Channel {
	return c.channel
}
