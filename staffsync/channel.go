package staffsync

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// RetryDelay adalah jeda tetap sebelum reconnect. Tidak ada backoff dan
// tidak ada batas percobaan; feed diasumsikan selalu kembali tersedia.
const RetryDelay = 2 * time.Second

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Channel memegang tepat satu koneksi logis ke live feed, mendecode frame
// menjadi Event, dan pulih sendiri dari disconnect. Channel tidak tahu
// apa-apa soal bentuk domain; ia hanya mengantar event.
//
// Handler dipanggil sinkron dari satu goroutine reader, jadi event dalam
// satu masa koneksi diproses berurutan, satu selesai sebelum berikutnya.
type Channel struct {
	resolveURL func() string
	dialer     *websocket.Dialer
	log        *logrus.Logger

	handler func(Event)
	onOpen  func(reconnect bool)

	mu        sync.Mutex
	state     ConnState
	conn      *websocket.Conn
	retry     *time.Timer
	closed    bool
	connected bool // pernah terhubung minimal sekali
}

// NewChannel membuat channel. resolveURL dipanggil ulang setiap dial,
// supaya kredensial di query string selalu yang terbaru.
func NewChannel(resolveURL func() string, log *logrus.Logger) *Channel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Channel{
		resolveURL: resolveURL,
		dialer:     websocket.DefaultDialer,
		log:        log,
	}
}

// OnEvent mendaftarkan handler frame. Panggil sebelum Connect.
func (ch *Channel) OnEvent(fn func(Event)) {
	ch.handler = fn
}

// OnOpen dipanggil setiap koneksi berhasil dibuka, sebelum frame pertama
// diproses. reconnect=true kalau ini bukan koneksi pertama; subscriber
// memakai ini untuk re-snapshot setelah gap.
func (ch *Channel) OnOpen(fn func(reconnect bool)) {
	ch.onOpen = fn
}

// State mengembalikan keadaan koneksi saat ini.
func (ch *Channel) State() ConnState {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

// Connect membuka koneksi secara asinkron. Aman dipanggil sekali saja;
// reconnect selanjutnya dijadwalkan internal.
func (ch *Channel) Connect() {
	ch.mu.Lock()
	if ch.closed || ch.state != StateDisconnected {
		ch.mu.Unlock()
		return
	}
	ch.state = StateConnecting
	ch.mu.Unlock()

	go ch.dial()
}

func (ch *Channel) dial() {
	url := ch.resolveURL()
	conn, resp, err := ch.dialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		ch.log.Errorf("Live feed dial failed: %v", err)
		ch.mu.Lock()
		ch.state = StateDisconnected
		ch.mu.Unlock()
		ch.scheduleRetry()
		return
	}

	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		conn.Close()
		return
	}
	reconnect := ch.connected
	ch.connected = true
	ch.conn = conn
	ch.state = StateConnected
	ch.mu.Unlock()

	ch.log.Info("Live feed connection established")
	if ch.onOpen != nil {
		ch.onOpen(reconnect)
	}

	ch.readLoop(conn)
}

func (ch *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		ev, derr := DecodeEvent(data)
		if derr != nil {
			// Frame rusak dibuang; channel jalan terus
			ch.log.Errorf("Dropping malformed live frame: %v", derr)
			continue
		}
		if ch.handler != nil {
			ch.handler(ev)
		}
	}

	conn.Close()

	ch.mu.Lock()
	ch.conn = nil
	ch.state = StateDisconnected
	closed := ch.closed
	ch.mu.Unlock()

	if closed {
		return
	}
	ch.log.Infof("Live feed connection lost, reconnecting in %s", RetryDelay)
	ch.scheduleRetry()
}

func (ch *Channel) scheduleRetry() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return
	}
	ch.retry = time.AfterFunc(RetryDelay, func() {
		ch.mu.Lock()
		if ch.closed || ch.state != StateDisconnected {
			ch.mu.Unlock()
			return
		}
		ch.state = StateConnecting
		ch.mu.Unlock()
		ch.dial()
	})
}

// Close adalah teardown yang disengaja: batalkan retry yang tertunda dan
// tutup socket tanpa memicu reconnect.
func (ch *Channel) Close() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return
	}
	ch.closed = true
	if ch.retry != nil {
		ch.retry.Stop()
		ch.retry = nil
	}
	conn := ch.conn
	ch.conn = nil
	ch.state = StateDisconnected
	ch.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}
