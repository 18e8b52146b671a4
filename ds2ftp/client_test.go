package ds2ftp

import (
	"bytes"
	"fmt"
	"net"
	"testing"
)

func newPipeClient(t *testing.T) (*Client, net.Conn, net.Conn) {
	t.Helper()
	ctrlClient, ctrlServer := net.Pipe()
	dataClient, dataServer := net.Pipe()

	cfg := ClientConfig{Timeout: 0}
	c := &Client{cfg: cfg.withDefaults()}
	c.ctrl = ctrlClient
	c.data = dataClient

	t.Cleanup(func() {
		ctrlClient.Close()
		ctrlServer.Close()
		dataClient.Close()
		dataServer.Close()
	})
	return c, ctrlServer, dataServer
}

// TestClient_DownloadFile_KnownVector exercises spec §8 scenario 3: a
// mock server issuing CTS(10,0,4), then after each chunk ack CTS(10,4,4)
// and CTS(10,8,2), must yield exactly 10 bytes 00..09.
func TestClient_DownloadFile_KnownVector(t *testing.T) {
	c, ctrlServer, dataServer := newPipeClient(t)

	done := make(chan struct{})
	go func() {
		defer close(done)

		rtsFrame, err := readCommandFrame(t, ctrlServer)
		if err != nil {
			t.Errorf("server: read RTS: %v", err)
			return
		}
		rts, err := DecodeCommand(rtsFrame)
		if err != nil {
			t.Errorf("server: decode RTS: %v", err)
			return
		}
		if r, ok := rts.(RTS); !ok || r.Dir != 1 || r.File != 1 {
			t.Errorf("server: got %+v, want RTS{Dir:1, File:1}", rts)
		}

		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 10, FileSize: 0, BlockSize: 4}))
		if ackFrame, err := readCommandFrame(t, ctrlServer); err != nil {
			t.Errorf("server: read CTS ack: %v", err)
		} else if _, err := DecodeCommand(ackFrame); err != nil {
			t.Errorf("server: decode CTS ack: %v", err)
		}

		dataServer.Write([]byte{0x00, 0x01, 0x02, 0x03})
		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 10, FileSize: 4, BlockSize: 4}))
		if ackFrame, err := readCommandFrame(t, ctrlServer); err != nil {
			t.Errorf("server: read CTS ack: %v", err)
		} else if _, err := DecodeCommand(ackFrame); err != nil {
			t.Errorf("server: decode CTS ack: %v", err)
		}

		dataServer.Write([]byte{0x04, 0x05, 0x06, 0x07})
		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 10, FileSize: 8, BlockSize: 2}))
		if ackFrame, err := readCommandFrame(t, ctrlServer); err != nil {
			t.Errorf("server: read CTS ack: %v", err)
		} else if _, err := DecodeCommand(ackFrame); err != nil {
			t.Errorf("server: decode CTS ack: %v", err)
		}

		dataServer.Write([]byte{0x08, 0x09})
	}()

	var dest bytes.Buffer
	n, err := c.DownloadFile(1, 1, &dest)
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	<-done

	want := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	if n != 10 || !bytes.Equal(dest.Bytes(), want) {
		t.Fatalf("DownloadFile = %d bytes % X, want 10 bytes % X", n, dest.Bytes(), want)
	}
}

func TestClient_DownloadFile_EmptyFileRejected(t *testing.T) {
	c, ctrlServer, _ := newPipeClient(t)

	go func() {
		if _, err := readCommandFrame(t, ctrlServer); err != nil {
			t.Errorf("server: read RTS: %v", err)
			return
		}
		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 0, FileSize: 0, BlockSize: 4}))
	}()

	if _, err := c.DownloadFile(1, 1, &bytes.Buffer{}); err != ErrEmptyFile {
		t.Errorf("DownloadFile error = %v, want ErrEmptyFile", err)
	}
}

func TestClient_UploadFile(t *testing.T) {
	c, ctrlServer, dataServer := newPipeClient(t)

	payload := bytes.Repeat([]byte{0xAB}, 9)
	src := bytes.NewReader(payload)

	var received []byte
	done := make(chan struct{})
	go func() {
		defer close(done)

		frame, err := readCommandFrame(t, ctrlServer)
		if err != nil {
			t.Errorf("server: read RTS: %v", err)
			return
		}
		rts, err := DecodeCommand(frame)
		if err != nil {
			t.Errorf("server: decode RTS: %v", err)
			return
		}
		if r, ok := rts.(RTS); !ok || r.FileSize != 9 {
			t.Errorf("server: got %+v, want RTS.FileSize=9", rts)
		}

		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 9, FileSize: 0, BlockSize: 4}))

		buf := make([]byte, 4)
		n, _ := dataServer.Read(buf)
		received = append(received, buf[:n]...)
		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 9, FileSize: 4, BlockSize: 4}))

		n, _ = dataServer.Read(buf)
		received = append(received, buf[:n]...)
		ctrlServer.Write(EncodeCTS(CTS{TotalSize: 9, FileSize: 8, BlockSize: 1}))

		buf = make([]byte, 1)
		n, _ = dataServer.Read(buf)
		received = append(received, buf[:n]...)
	}()

	n, err := c.UploadFile(src, 9, 1, 1)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	<-done

	if n != 9 || !bytes.Equal(received, payload) {
		t.Fatalf("UploadFile sent %d bytes % X, want 9 bytes % X", n, received, payload)
	}
}

// readCommandFrame reads one command frame from conn. It returns an error
// rather than failing t directly: it runs on the mock-server goroutine,
// and only the goroutine running the test itself may call t.Fatal.
func readCommandFrame(t *testing.T, conn net.Conn) ([]byte, error) {
	t.Helper()
	magic := make([]byte, 4)
	if _, err := conn.Read(magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	opcodeBytes := make([]byte, 4)
	if _, err := conn.Read(opcodeBytes); err != nil {
		return nil, fmt.Errorf("read opcode: %w", err)
	}
	op := CmdType(int64(beUint32(opcodeBytes)))
	fixed, ok := cmdLengths[op]
	if !ok {
		return nil, fmt.Errorf("unknown opcode %v", op)
	}
	body := make([]byte, fixed-8)
	if _, err := conn.Read(body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return append(append(append([]byte{}, magic...), opcodeBytes...), body...), nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
