package ds2ftp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// ClientConfig configures a Client (spec 4.8, 6.1).
type ClientConfig struct {
	Host      string
	CtrlPort  int
	DataPort  int
	Timeout   time.Duration
	ChunkSize int
}

// Validate rejects a ClientConfig that could not produce a working
// client, mirroring the Python DS2FTPConfig's implicit constraints.
func (c *ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("ds2ftp: host must not be empty")
	}
	if c.CtrlPort <= 0 || c.CtrlPort > 65535 {
		return fmt.Errorf("ds2ftp: ctrl_port %d out of range", c.CtrlPort)
	}
	if c.DataPort <= 0 || c.DataPort > 65535 {
		return fmt.Errorf("ds2ftp: data_port %d out of range", c.DataPort)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("ds2ftp: timeout must not be negative")
	}
	return nil
}

func (c *ClientConfig) withDefaults() ClientConfig {
	out := *c
	if out.CtrlPort == 0 {
		out.CtrlPort = DefaultCtrlPort
	}
	if out.DataPort == 0 {
		out.DataPort = DefaultDataPort
	}
	if out.Timeout == 0 {
		out.Timeout = 5 * time.Second
	}
	if out.ChunkSize == 0 {
		out.ChunkSize = DefaultChunkSize
	}
	return out
}

// Client is the DS2FTP dual-channel client (spec 4.8). It owns two
// independent TCP connections, a transfer-level mutex (the two channels
// are conceptually interleaved, so a partial second caller would corrupt
// state), a FileMode tracker, and running transfer counters.
type Client struct {
	cfg ClientConfig

	ctrl net.Conn
	data net.Conn

	mu sync.Mutex

	mode     FileMode
	dir      int
	file     int
	total    uint32
	done     uint32
	lastCTS  CTS
}

// NewClient constructs a Client from cfg, defaulting unset fields.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Connect opens the control channel, then the data channel; if the data
// channel fails, the control channel is closed and the error propagated
// (spec 4.8 Connect/disconnect).
func (c *Client) Connect() error {
	ctrlAddr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.CtrlPort)
	ctrl, err := net.DialTimeout("tcp", ctrlAddr, c.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("ds2ftp: dial control %s: %w", ctrlAddr, err)
	}

	dataAddr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.DataPort)
	data, err := net.DialTimeout("tcp", dataAddr, c.cfg.Timeout)
	if err != nil {
		ctrl.Close()
		return fmt.Errorf("%w: dial data %s: %v", ErrDataChannelFailed, dataAddr, err)
	}

	c.ctrl = ctrl
	c.data = data
	return nil
}

// Disconnect closes both channels.
func (c *Client) Disconnect() error {
	var firstErr error
	if c.data != nil {
		if err := c.data.Close(); err != nil {
			firstErr = err
		}
		c.data = nil
	}
	if c.ctrl != nil {
		if err := c.ctrl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.ctrl = nil
	}
	return firstErr
}

func (c *Client) resetProcessingInfo() {
	c.mode = FileModeNone
	c.dir = 0
	c.file = 0
	c.total = 0
	c.done = 0
}

// ctrlSend writes data to the control channel.
func (c *Client) ctrlSend(data []byte) error {
	if c.ctrl == nil {
		return ErrNotConnected
	}
	_, err := c.ctrl.Write(data)
	return err
}

// ctrlReceive scans for the DS2 magic (discarding preceding bytes),
// reads the opcode, reads the command's fixed body length, and for
// ERRORCTS additionally reads byte-by-byte until a newline or a 1s
// silence (spec 4.8).
func (c *Client) ctrlReceive(timeout time.Duration) ([]byte, error) {
	if c.ctrl == nil {
		return nil, ErrNotConnected
	}
	if timeout == 0 {
		timeout = c.cfg.Timeout
	}

	if err := c.ctrl.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	var window [4]byte
	for {
		var b [1]byte
		if _, err := io.ReadFull(c.ctrl, b[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMagicNotFound, err)
		}
		window[0], window[1], window[2], window[3] = window[1], window[2], window[3], b[0]
		if window == ds2Header {
			break
		}
	}

	var opcodeBytes [4]byte
	if _, err := io.ReadFull(c.ctrl, opcodeBytes[:]); err != nil {
		return nil, fmt.Errorf("ds2ftp: read opcode: %w", err)
	}
	op := CmdType(int64(binary.BigEndian.Uint32(opcodeBytes[:])))

	fixedLen, known := cmdLengths[op]
	if op == CmdErrorCTS {
		fixedLen = cmdLengths[CmdCTS]
		known = true
	}
	if !known {
		return nil, fmt.Errorf("%w: 0x%X", ErrUnknownCmd, uint32(op))
	}

	remaining := fixedLen - 8
	body := make([]byte, remaining)
	if _, err := io.ReadFull(c.ctrl, body); err != nil {
		return nil, fmt.Errorf("ds2ftp: read command body: %w", err)
	}

	frame := append(append(append([]byte{}, ds2Header[:]...), opcodeBytes[:]...), body...)

	if op == CmdErrorCTS {
		if err := c.ctrl.SetReadDeadline(time.Now().Add(1 * time.Second)); err != nil {
			return nil, err
		}
		var tail bytes.Buffer
		for {
			var b [1]byte
			if _, err := c.ctrl.Read(b[:]); err != nil {
				break
			}
			if b[0] == '\n' {
				break
			}
			tail.WriteByte(b[0])
		}
		frame = append(frame, tail.Bytes()...)
	}

	return frame, nil
}

// dataSend writes data to the data channel.
func (c *Client) dataSend(data []byte) error {
	if c.data == nil {
		return ErrNotConnected
	}
	_, err := c.data.Write(data)
	return err
}

// dataReceive reads exactly size bytes from the data channel, retrying
// on partial reads; after the first partial chunk the per-read timeout
// drops to 2s (spec 4.8 step 6a).
func (c *Client) dataReceive(size int, timeout time.Duration) ([]byte, error) {
	if c.data == nil {
		return nil, ErrNotConnected
	}
	if timeout == 0 {
		timeout = c.cfg.Timeout
	}

	received := make([]byte, 0, size)
	remaining := size
	for remaining > 0 {
		if err := c.data.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		buf := make([]byte, remaining)
		n, err := c.data.Read(buf)
		if n > 0 {
			received = append(received, buf[:n]...)
			remaining -= n
			timeout = 2 * time.Second
		}
		if err != nil {
			if len(received) > 0 {
				break
			}
			return nil, fmt.Errorf("ds2ftp: data channel receive: %w", err)
		}
	}
	return received, nil
}

func (c *Client) sendCTS(nextBlockSize uint32) error {
	cts := CTS{TotalSize: c.total, FileSize: c.done, BlockSize: nextBlockSize}
	c.lastCTS = cts
	return c.ctrlSend(EncodeCTS(cts))
}

// DownloadFile retrieves dir/file from the terminal, writing its bytes to
// dest, and returns the number of bytes written (spec 4.8 Download pump).
func (c *Client) DownloadFile(dir, file int, dest io.Writer) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetProcessingInfo()

	if err := c.ctrlSend(EncodeRTS(RTS{Dir: uint32(dir), File: uint32(file)})); err != nil {
		return 0, fmt.Errorf("ds2ftp: send RTS: %w", err)
	}

	frame, err := c.ctrlReceive(0)
	if err != nil {
		return 0, fmt.Errorf("ds2ftp: receive initial CTS: %w", err)
	}
	cmd, err := DecodeCommand(frame)
	if err != nil {
		return 0, err
	}
	cts, ok := cmd.(CTS)
	if !ok {
		return 0, fmt.Errorf("%w: got %T", ErrUnexpectedReply, cmd)
	}
	if cts.TotalSize < 1 {
		return 0, ErrEmptyFile
	}

	c.mode = FileModeGet
	c.dir, c.file = dir, file
	c.total, c.done = cts.TotalSize, cts.FileSize
	blockSize := cts.BlockSize

	if err := c.sendCTS(blockSize); err != nil {
		return 0, fmt.Errorf("ds2ftp: send CTS ack: %w", err)
	}

	var written int64
	for c.done < c.total {
		chunk, err := c.dataReceive(int(blockSize), 0)
		if err != nil {
			return written, fmt.Errorf("ds2ftp: receive data chunk: %w", err)
		}
		n, err := dest.Write(chunk)
		written += int64(n)
		c.done += uint32(n)
		if err != nil {
			return written, err
		}

		if c.done >= c.total {
			break
		}

		frame, err := c.ctrlReceive(3 * time.Second)
		if err != nil {
			if c.done >= c.total-uint32(n) {
				break
			}
			return written, fmt.Errorf("ds2ftp: receive next CTS: %w", err)
		}
		cmd, err := DecodeCommand(frame)
		if err != nil {
			return written, err
		}
		switch next := cmd.(type) {
		case ErrorCTS:
			log.Errorf("ds2ftp: received ERRORCTS: %s", next.Message)
			return written, nil
		case CTS:
			blockSize = next.BlockSize
			// done stays the locally accumulated byte count; only total is
			// re-synced from the server's report here.
			c.total = next.TotalSize
			if next.FileSize >= next.TotalSize {
				goto downloadComplete
			}
			if err := c.sendCTS(blockSize); err != nil {
				return written, fmt.Errorf("ds2ftp: send CTS ack: %w", err)
			}
		default:
			return written, fmt.Errorf("%w: got %T", ErrUnexpectedReply, cmd)
		}
	}
downloadComplete:

	c.resetProcessingInfo()
	return written, nil
}

// UploadFile sends size bytes read from src to dir/file on the terminal
// and returns the number of bytes uploaded (spec 4.8 Upload pump).
func (c *Client) UploadFile(src io.ReadSeeker, size int64, dir, file int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetProcessingInfo()

	if err := c.ctrlSend(EncodeRTS(RTS{Dir: uint32(dir), File: uint32(file), FileSize: uint32(size)})); err != nil {
		return 0, fmt.Errorf("ds2ftp: send RTS: %w", err)
	}

	frame, err := c.ctrlReceive(0)
	if err != nil {
		return 0, fmt.Errorf("ds2ftp: receive initial CTS: %w", err)
	}
	cmd, err := DecodeCommand(frame)
	if err != nil {
		return 0, err
	}
	cts, ok := cmd.(CTS)
	if !ok {
		return 0, fmt.Errorf("%w: got %T", ErrUnexpectedReply, cmd)
	}

	c.mode = FileModePut
	c.dir, c.file = dir, file
	c.total, c.done = cts.TotalSize, cts.FileSize // server values: allows resume
	blockSize := cts.BlockSize

	var sent int64
	for c.done < c.total {
		if _, err := src.Seek(int64(c.done), io.SeekStart); err != nil {
			return sent, err
		}
		buf := make([]byte, blockSize)
		n, err := io.ReadFull(src, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return sent, err
		}
		if n == 0 {
			break
		}
		if err := c.dataSend(buf[:n]); err != nil {
			return sent, fmt.Errorf("ds2ftp: send data chunk: %w", err)
		}
		sent += int64(n)
		c.done += uint32(n)

		if c.done >= c.total {
			break
		}

		frame, err := c.ctrlReceive(3 * time.Second)
		if err != nil {
			if c.done >= c.total-uint32(n) {
				break
			}
			return sent, fmt.Errorf("ds2ftp: receive next CTS: %w", err)
		}
		cmd, err := DecodeCommand(frame)
		if err != nil {
			return sent, err
		}
		switch next := cmd.(type) {
		case ErrorCTS:
			log.Errorf("ds2ftp: received ERRORCTS: %s", next.Message)
			return sent, nil
		case CTS:
			blockSize = next.BlockSize
			// done stays the locally accumulated byte count; only total is
			// re-synced from the server's report here.
			c.total = next.TotalSize
			if next.FileSize >= next.TotalSize {
				goto uploadComplete
			}
		default:
			return sent, fmt.Errorf("%w: got %T", ErrUnexpectedReply, cmd)
		}
	}
uploadComplete:

	c.resetProcessingInfo()
	return sent, nil
}

// Exists reports whether dir/file is present on the terminal by
// attempting a download into a discarded buffer and checking whether
// any bytes were received (spec 4.8 exists_file).
func (c *Client) Exists(dir, file int) (bool, error) {
	n, err := c.DownloadFile(dir, file, io.Discard)
	if err != nil {
		if err == ErrEmptyFile {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}
