package sftp

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dkkaraoke/dknw-tools/internal/unicrypt"
)

// ClientConfig configures a Client (spec 4.6, 6.1).
type ClientConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
	Network NetworkType
}

// DefaultTimeout is the SFTP connect timeout used when ClientConfig.Timeout
// is zero (spec 6.1).
const DefaultTimeout = 5 * time.Second

// Validate rejects a ClientConfig that could not produce a working
// client, mirroring the original Python NetworkConfig.validate().
func (c *ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("sftp: host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("sftp: port %d out of range", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("sftp: timeout must not be negative")
	}
	return nil
}

// Client is the SFTP session-oriented file-transfer client (spec 4.6).
// It owns one TCP connection, a send-lock serialising request+response
// pairs, and the configured network framing.
type Client struct {
	cfg  ClientConfig
	conn net.Conn

	// mu guards every send-and-expect critical section. The download
	// receive loop intentionally runs outside mu (spec 4.6, 5).
	mu sync.Mutex
}

// NewClient constructs a Client from cfg, defaulting Timeout if unset.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Connect dials the terminal and performs the A_CONNECT/A_AUTHENT/A_ACCEPT
// handshake (spec 4.6 Connect).
func (c *Client) Connect() error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	log.Infof("sftp: connecting to %s", addr)
	conn, err := net.DialTimeout("tcp", addr, c.cfg.Timeout)
	if err != nil {
		log.Errorf("sftp: dial %s: %v", addr, err)
		return fmt.Errorf("sftp: dial %s: %w", addr, err)
	}
	c.conn = conn

	if err := c.handshake(); err != nil {
		log.Errorf("sftp: handshake with %s: %v", addr, err)
		conn.Close()
		c.conn = nil
		return err
	}
	log.Infof("sftp: connected to %s", addr)
	return nil
}

func (c *Client) handshake() error {
	connectApdu := &GenericApdu{Type: AConnect}
	connectApdu.SetItem(ItemSystemID, []byte("DKNW10"))
	connectApdu.SetItem(ItemProtocolID, []byte("SFTP11"))
	connectApdu.SetItem(ItemClientSide, []byte{0x00, 0x00})
	connectApdu.SetItem(ItemJobID, []byte{0x01, 0x10})

	log.Debugf("sftp: send %s", connectApdu.Type)
	reply, err := c.sendAndExpect(connectApdu)
	if err != nil {
		return err
	}
	if reply.Type != AAuthent {
		return fmt.Errorf("%w: expected A_AUTHENT, got %s", ErrAuthentNotOffered, reply.Type)
	}
	challenge := reply.GetItem(ItemAuthReq)
	if challenge == nil {
		return ErrMissingAuthReq
	}
	log.Debugf("sftp: received %s with AUTH_REQ challenge", reply.Type)

	var crypt unicrypt.Unicrypt
	response := crypt.Encrypt(challenge)

	authRsp := &GenericApdu{Type: AAuthentRsp}
	authRsp.SetItem(ItemAuthRes, response)

	log.Debugf("sftp: send %s", authRsp.Type)
	accept, err := c.sendAndExpect(authRsp)
	if err != nil {
		return err
	}
	if accept.Type != AAccept {
		return fmt.Errorf("%w: got %s", ErrNotAccepted, accept.Type)
	}
	log.Debugf("sftp: received %s", accept.Type)
	return nil
}

// Disconnect sends A_RELEASE, waits for A_SYNC, and closes the connection
// regardless of any error encountered after A_RELEASE is sent (spec 4.6
// Disconnect).
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return ErrNotConnected
	}
	defer func() {
		c.conn.Close()
		c.conn = nil
		log.Infof("sftp: disconnected")
	}()

	log.Debugf("sftp: send %s", ARelease)
	reply, err := c.sendAndExpect(&GenericApdu{Type: ARelease})
	if err != nil {
		return err
	}
	if reply.Type != ASync {
		return fmt.Errorf("%w: expected A_SYNC, got %s", ErrSyncNotReceived, reply.Type)
	}
	log.Debugf("sftp: received %s", reply.Type)
	return nil
}

// sendAndExpect writes a GenericApdu and reads the next GenericApdu reply,
// under the client's lock. It is the building block for every
// send-and-expect critical section named in spec 4.6.
func (c *Client) sendAndExpect(a *GenericApdu) (*GenericApdu, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}
	if err := EncodeNsdu(c.conn, &Nsdu{Apdu: a, Network: c.cfg.Network}); err != nil {
		log.Errorf("sftp: send %s: %v", a.Type, err)
		return nil, fmt.Errorf("sftp: send %s: %w", a.Type, err)
	}
	n, err := DecodeNsdu(c.conn, c.cfg.Network)
	if err != nil {
		log.Errorf("sftp: receive reply to %s: %v", a.Type, err)
		return nil, fmt.Errorf("sftp: receive reply to %s: %w", a.Type, err)
	}
	reply, ok := n.Apdu.(*GenericApdu)
	if !ok {
		log.Errorf("sftp: expected GenericApdu reply to %s, got F_DATA", a.Type)
		return nil, fmt.Errorf("%w: got F_DATA", ErrUnexpectedApdu)
	}
	log.Debugf("sftp: received %s", reply.Type)
	return reply, nil
}

// fileNumberItem packs dir/file into the FILE_NUMBER item encoding
// u16(dir) || u32(file) used by F_START (spec 4.6).
func fileNumberItem(dir, file int) []byte {
	buf := make([]byte, 6)
	binary.BigEndian.PutUint16(buf[0:2], uint16(dir))
	binary.BigEndian.PutUint32(buf[2:6], uint32(file))
	return buf
}

// DownloadFile retrieves dir/file from the terminal, writing its bytes to
// dest, and returns the number of bytes written (spec 4.6 Download).
func (c *Client) DownloadFile(dir, file int, dest io.Writer) (int64, error) {
	log.Infof("sftp: download dir=%d file=%d", dir, file)

	start := &GenericApdu{Type: FStart}
	start.SetItem(ItemFileOperation, []byte{0x00, byte(FileOperationRead)})
	start.SetItem(ItemFileNumber, fileNumberItem(dir, file))

	ready, err := c.sendAndExpect(start)
	if err != nil {
		return 0, err
	}
	if ready.Type != FReady {
		return 0, fmt.Errorf("%w: expected F_READY, got %s", ErrReadyNotReceived, ready.Type)
	}

	var written int64
receiveLoop:
	for {
		if c.conn == nil {
			return written, ErrNotConnected
		}
		n, err := DecodeNsdu(c.conn, c.cfg.Network)
		if err != nil {
			log.Errorf("sftp: download receive: %v", err)
			return written, fmt.Errorf("sftp: download receive: %w", err)
		}
		switch apdu := n.Apdu.(type) {
		case *FDataApdu:
			m, err := dest.Write(apdu.Data)
			written += int64(m)
			log.Debugf("sftp: received F_DATA (%d bytes, %d total)", m, written)
			if err != nil {
				log.Errorf("sftp: write downloaded data: %v", err)
				return written, err
			}
		case *GenericApdu:
			if apdu.Type == FFinal {
				log.Debugf("sftp: received %s", apdu.Type)
				break receiveLoop
			}
			log.Errorf("sftp: unexpected %s during download", apdu.Type)
			return written, fmt.Errorf("%w: %s during download", ErrUnexpectedApdu, apdu.Type)
		}
	}

	// F_END is a bare notification, not a send-and-expect: the terminal
	// never replies to it (spec 4.6 Download step 4), so this must not
	// wait for a response.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return written, ErrNotConnected
	}
	log.Debugf("sftp: send %s", FEnd)
	if err := EncodeNsdu(c.conn, &Nsdu{Apdu: &GenericApdu{Type: FEnd}, Network: c.cfg.Network}); err != nil {
		log.Errorf("sftp: send %s: %v", FEnd, err)
		return written, fmt.Errorf("sftp: send F_END: %w", err)
	}
	log.Infof("sftp: download complete, %d bytes", written)
	return written, nil
}

// UploadFile sends src (exactly size bytes) to dir/file on the terminal in
// 0xFF8-byte chunks and returns the number of bytes sent (spec 4.6 Upload).
func (c *Client) UploadFile(src io.Reader, size int64, dir, file int) (int64, error) {
	log.Infof("sftp: upload dir=%d file=%d size=%d", dir, file, size)

	start := &GenericApdu{Type: FStart}
	start.SetItem(ItemFileOperation, []byte{0x00, byte(FileOperationReplace)})
	start.SetItem(ItemFileNumber, fileNumberItem(dir, file))
	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], uint32(size))
	start.SetItem(ItemExpectFileSize, sizeBuf[:])

	ready, err := c.sendAndExpect(start)
	if err != nil {
		return 0, err
	}
	if ready.Type != FReady {
		return 0, fmt.Errorf("%w: expected F_READY, got %s", ErrReadyNotReceived, ready.Type)
	}
	if got := ready.GetItem(ItemExpectFileSize); binary.BigEndian.Uint32(pad4(got)) != uint32(size) {
		log.Errorf("sftp: F_READY EXPECT_FILE_SIZE mismatch")
		return 0, ErrFileSizeMismatch
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return 0, ErrNotConnected
	}

	var sent int64
	chunk := make([]byte, dataChunkSize)
	for sent < size {
		n, err := io.ReadFull(src, chunk)
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			// last, short chunk
		} else if err != nil {
			log.Errorf("sftp: read upload source: %v", err)
			return sent, err
		}
		if err := EncodeNsdu(c.conn, &Nsdu{Apdu: &FDataApdu{Data: chunk[:n]}, Network: c.cfg.Network}); err != nil {
			log.Errorf("sftp: send F_DATA: %v", err)
			return sent, fmt.Errorf("sftp: upload chunk: %w", err)
		}
		sent += int64(n)
		log.Debugf("sftp: sent F_DATA (%d bytes, %d total)", n, sent)
	}

	log.Debugf("sftp: send %s", FFinal)
	if err := EncodeNsdu(c.conn, &Nsdu{Apdu: &GenericApdu{Type: FFinal}, Network: c.cfg.Network}); err != nil {
		log.Errorf("sftp: send F_FINAL: %v", err)
		return sent, fmt.Errorf("sftp: send F_FINAL: %w", err)
	}
	n, err := DecodeNsdu(c.conn, c.cfg.Network)
	if err != nil {
		log.Errorf("sftp: receive F_END: %v", err)
		return sent, fmt.Errorf("sftp: receive F_END: %w", err)
	}
	end, ok := n.Apdu.(*GenericApdu)
	if !ok || end.Type != FEnd {
		log.Errorf("sftp: F_FINAL not acknowledged")
		return sent, ErrFinalNotAcknowledged
	}
	log.Infof("sftp: upload complete, %d bytes", sent)
	return sent, nil
}

// Exists reports whether dir/file is present on the terminal. It is
// implemented by attempting a download into a discarded buffer and
// checking whether any bytes were received, mirroring the DS2FTP
// client's exists_file in the same idiom (SPEC_FULL, SFTP module).
func (c *Client) Exists(dir, file int) (bool, error) {
	log.Debugf("sftp: exists dir=%d file=%d", dir, file)
	n, err := c.DownloadFile(dir, file, io.Discard)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func pad4(b []byte) []byte {
	if len(b) >= 4 {
		return b[:4]
	}
	out := make([]byte, 4)
	copy(out[4-len(b):], b)
	return out
}
