package driver

import (
	"fmt"
	"io"

	"github.com/dkkaraoke/dknw-tools/ds2ftp"
	"github.com/dkkaraoke/dknw-tools/sftp"
)

// fileClient is the protocol-independent surface RunSearchDirs,
// RunDownloadFile and RunUploadFile dispatch through, so the same
// driver logic runs unchanged against either protocol (spec 6.2's
// protocol=sftp|ds2ftp flag).
type fileClient interface {
	Connect() error
	Disconnect() error
	Exists(dir, file int) (bool, error)
	DownloadFile(dir, file int, dest io.Writer) (int64, error)
	UploadFile(src io.ReadSeeker, size int64, dir, file int) (int64, error)
}

// newFileClient builds the fileClient cfg.Protocol selects.
func newFileClient(cfg Config) (fileClient, error) {
	switch cfg.Protocol {
	case ProtocolDS2FTP:
		c, err := ds2ftp.NewClient(ds2ftp.ClientConfig{
			Host:     cfg.Host,
			CtrlPort: cfg.CtrlPort,
			DataPort: cfg.DataPort,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return ds2ftpFileClient{c}, nil
	case ProtocolSFTP, "":
		c, err := sftp.NewClient(sftp.ClientConfig{
			Host:    cfg.Host,
			Port:    cfg.Port,
			Timeout: cfg.Timeout,
			Network: cfg.Network,
		})
		if err != nil {
			return nil, err
		}
		return sftpFileClient{c}, nil
	default:
		return nil, fmt.Errorf("driver: unknown protocol %q", cfg.Protocol)
	}
}

// sftpFileClient adapts *sftp.Client to fileClient; sftp.Client.UploadFile
// takes a bare io.Reader, which io.ReadSeeker already satisfies.
type sftpFileClient struct{ c *sftp.Client }

func (f sftpFileClient) Connect() error    { return f.c.Connect() }
func (f sftpFileClient) Disconnect() error { return f.c.Disconnect() }
func (f sftpFileClient) Exists(dir, file int) (bool, error) {
	return f.c.Exists(dir, file)
}
func (f sftpFileClient) DownloadFile(dir, file int, dest io.Writer) (int64, error) {
	return f.c.DownloadFile(dir, file, dest)
}
func (f sftpFileClient) UploadFile(src io.ReadSeeker, size int64, dir, file int) (int64, error) {
	return f.c.UploadFile(src, size, dir, file)
}

// ds2ftpFileClient adapts *ds2ftp.Client to fileClient.
type ds2ftpFileClient struct{ c *ds2ftp.Client }

func (f ds2ftpFileClient) Connect() error    { return f.c.Connect() }
func (f ds2ftpFileClient) Disconnect() error { return f.c.Disconnect() }
func (f ds2ftpFileClient) Exists(dir, file int) (bool, error) {
	return f.c.Exists(dir, file)
}
func (f ds2ftpFileClient) DownloadFile(dir, file int, dest io.Writer) (int64, error) {
	return f.c.DownloadFile(dir, file, dest)
}
func (f ds2ftpFileClient) UploadFile(src io.ReadSeeker, size int64, dir, file int) (int64, error) {
	return f.c.UploadFile(src, size, dir, file)
}
