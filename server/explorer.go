package server

import (
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	gofuse "github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/explorer/config"
	efuse "github.com/brettbedarf/explorer/fuse"
	"github.com/brettbedarf/explorer/internal/util"
	"github.com/brettbedarf/explorer/tree"
)

// Explorer contains the tree and the optional FUSE server presenting it
type Explorer struct {
	*tree.Store
	cfg    *config.Config
	server *gofuse.Server
}

// New creates an Explorer for store given your config.
func New(cfg *config.Config, store *tree.Store) *Explorer {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Explorer{
		Store: store,
		cfg:   cfg,
	}
}

// mountOptions translates the config into go-fuse options
func (e *Explorer) mountOptions() *fs.Options {
	attrTimeout := secondsToDuration(e.cfg.AttrTimeout)
	entryTimeout := secondsToDuration(e.cfg.EntryTimeout)
	opts := e.cfg.MountOptions
	return &fs.Options{
		MountOptions: gofuse.MountOptions{
			Name:   opts.Name,
			FsName: opts.FsName,
			Debug:  opts.Debug || e.cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.DebugLevel),
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
		Logger:       util.NewLogLogger("FuseBridge", util.WarnLevel),
	}
}

// Serve mounts the tree at mountPoint and returns once the mount is live.
func (e *Explorer) Serve(mountPoint string) error {
	logger := util.GetLogger("Explorer.Serve")

	view := efuse.NewView(e.Store)
	srv, err := fs.Mount(mountPoint, view.Root(), e.mountOptions())
	if err != nil {
		logger.Error().Err(err).Str("mountpoint", mountPoint).Msg("Mount failed")
		return err
	}
	e.server = srv
	logger.Debug().Str("mountpoint", mountPoint).Msg("Mounted")
	return nil
}

func (e *Explorer) ServeAsync(mountPoint string) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- e.Serve(mountPoint)
		close(done)
	}()

	return done
}

// Wait blocks until the filesystem is unmounted. Returns immediately when
// not mounted.
func (e *Explorer) Wait() {
	if e.server == nil {
		return
	}
	e.server.Wait()
}

// Unmount cleanly unmounts the filesystem.
func (e *Explorer) Unmount() error {
	if e.server == nil {
		return nil
	}
	return e.server.Unmount()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
