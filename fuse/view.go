// Package fuse exposes a [tree.Store] as a mountable filesystem. Folders are
// directories and files are empty regular files. Directory operations are
// translated into store operations:
//
//	mkdir        -> Insert folder
//	create/touch -> Insert file
//	unlink/rmdir -> Delete
//	rename       -> Edit (same folder only)
package fuse

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	gofuse "github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/explorer"
	"github.com/brettbedarf/explorer/internal/util"
	"github.com/brettbedarf/explorer/tree"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// View maps store node ids onto stable inode numbers and hands out the
// FUSE nodes backing them
type View struct {
	store   *tree.Store
	lastIno atomic.Uint64               // Last inode number assigned
	inos    *xsync.Map[string, uint64] // maps node ids to inode numbers
}

func NewView(store *tree.Store) *View {
	v := &View{
		store: store,
		inos:  xsync.NewMap[string, uint64](),
	}
	v.lastIno.Store(gofuse.FUSE_ROOT_ID)
	v.inos.Store(store.Root(), gofuse.FUSE_ROOT_ID)
	return v
}

// Root returns the FUSE node for the store's root, to be passed to fs.Mount
func (v *View) Root() *Node {
	return &Node{view: v, id: v.store.Root()}
}

// Ino returns the inode number for a node id, allocating one on first use.
// Numbers are never reused.
func (v *View) Ino(id string) uint64 {
	if ino, ok := v.inos.Load(id); ok {
		return ino
	}
	ino, _ := v.inos.LoadOrStore(id, v.lastIno.Add(1))
	return ino
}

// forget drops the inode numbers of a removed subtree
func (v *View) forget(def explorer.NodeDef) {
	def.Walk(func(d explorer.NodeDef) bool {
		v.inos.Delete(d.ID)
		return true
	})
}

// fillAttr writes the attributes of info into out
func (v *View) fillAttr(info explorer.NodeInfo, out *gofuse.Attr) {
	out.Ino = v.Ino(info.ID())
	out.Mode = modeOf(info)
	out.Nlink = 1
	if info.IsFolder() {
		out.Nlink = uint32(2 + info.ChildCount())
	}
	out.Blksize = 4096
}

func modeOf(info explorer.NodeInfo) uint32 {
	if info.IsFolder() {
		return uint32(syscall.S_IFDIR | dirPerms)
	}
	return uint32(syscall.S_IFREG | filePerms)
}

// toErrno maps store errors onto errno values
func toErrno(err error) syscall.Errno {
	switch {
	case err == nil:
		return fs.OK
	case errors.Is(err, tree.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, tree.ErrInvalidTarget):
		return syscall.ENOTDIR
	case errors.Is(err, tree.ErrInvalidLabel):
		return syscall.EINVAL
	case errors.Is(err, tree.ErrRootDeletionForbidden):
		return syscall.EPERM
	case errors.Is(err, tree.ErrIDExhausted):
		return syscall.ENOSPC
	default:
		return syscall.EIO
	}
}

// Node is the FUSE side of a single tree node
type Node struct {
	fs.Inode
	view *View
	id   string
}

var (
	_ = (fs.NodeGetattrer)((*Node)(nil))
	_ = (fs.NodeSetattrer)((*Node)(nil))
	_ = (fs.NodeLookuper)((*Node)(nil))
	_ = (fs.NodeReaddirer)((*Node)(nil))
	_ = (fs.NodeMkdirer)((*Node)(nil))
	_ = (fs.NodeCreater)((*Node)(nil))
	_ = (fs.NodeUnlinker)((*Node)(nil))
	_ = (fs.NodeRmdirer)((*Node)(nil))
	_ = (fs.NodeRenamer)((*Node)(nil))
	_ = (fs.NodeOpener)((*Node)(nil))
	_ = (fs.NodeReader)((*Node)(nil))
)

// ID returns the store id backing the node
func (n *Node) ID() string {
	return n.id
}

// newChild wraps a child in a new, non-persistent inode
func (n *Node) newChild(ctx context.Context, child explorer.NodeInfo) *fs.Inode {
	node := &Node{view: n.view, id: child.ID()}
	stable := fs.StableAttr{
		Mode: modeOf(child) & syscall.S_IFMT,
		Ino:  n.view.Ino(child.ID()),
	}
	return n.NewInode(ctx, node, stable)
}

func (n *Node) Getattr(ctx context.Context, f fs.FileHandle, out *gofuse.AttrOut) syscall.Errno {
	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return toErrno(err)
	}
	defer nc.Close()

	n.view.fillAttr(nc, &out.Attr)
	return fs.OK
}

// Setattr accepts timestamp and truncate requests without storing anything;
// nodes carry no content or times
func (n *Node) Setattr(ctx context.Context, f fs.FileHandle, in *gofuse.SetAttrIn, out *gofuse.AttrOut) syscall.Errno {
	if size, ok := in.GetSize(); ok && size != 0 {
		return syscall.EPERM
	}
	return n.Getattr(ctx, f, out)
}

func (n *Node) Lookup(ctx context.Context, name string, out *gofuse.EntryOut) (*fs.Inode, syscall.Errno) {
	logger := util.GetLogger("Fuse.Lookup")
	logger.Trace().Str("parent", n.id).Str("name", name).Msg("Lookup called")

	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return nil, toErrno(err)
	}
	defer nc.Close()

	child := nc.ChildByName(name)
	if child == nil {
		return nil, syscall.ENOENT
	}
	n.view.fillAttr(child, &out.Attr)
	return n.newChild(ctx, child), fs.OK
}

// Readdir lists children in display order: newest folders first, files last
func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return nil, toErrno(err)
	}
	defer nc.Close()

	if !nc.IsFolder() {
		return nil, syscall.ENOTDIR
	}
	entries := make([]gofuse.DirEntry, 0, nc.ChildCount())
	for _, ch := range nc.Children() {
		entries = append(entries, gofuse.DirEntry{
			Name: ch.Name(),
			Mode: modeOf(ch),
			Ino:  n.view.Ino(ch.ID()),
		})
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *gofuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return n.insert(ctx, name, true, out)
}

func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *gofuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	inode, errno := n.insert(ctx, name, false, out)
	return inode, nil, 0, errno
}

// insert adds a child through the store and returns its inode
func (n *Node) insert(ctx context.Context, name string, isFolder bool, out *gofuse.EntryOut) (*fs.Inode, syscall.Errno) {
	logger := util.GetLogger("Fuse.Insert")

	if errno := n.checkNameFree(name); errno != fs.OK {
		return nil, errno
	}
	id, err := n.view.store.InsertNode(n.id, name, isFolder)
	if err != nil {
		logger.Debug().Err(err).Str("parent", n.id).Str("name", name).Msg("Insert failed")
		return nil, toErrno(err)
	}

	nc, err := n.view.store.NodeCtx(id)
	if err != nil {
		// removed by a concurrent caller between insert and lookup
		return nil, toErrno(err)
	}
	defer nc.Close()

	n.view.fillAttr(nc, &out.Attr)
	logger.Debug().Str("id", id).Str("path", nc.Path()).Bool("folder", isFolder).Msg("Inserted node")
	return n.newChild(ctx, nc), fs.OK
}

// checkNameFree returns EEXIST when a child already carries name; paths need
// unique names even though the tree itself does not
func (n *Node) checkNameFree(name string) syscall.Errno {
	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return toErrno(err)
	}
	defer nc.Close()

	if nc.ChildByName(name) != nil {
		return syscall.EEXIST
	}
	return fs.OK
}

// childID resolves a child by name and checks its kind against wantFolder
func (n *Node) childID(name string, wantFolder bool) (string, syscall.Errno) {
	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return "", toErrno(err)
	}
	defer nc.Close()

	child := nc.ChildByName(name)
	switch {
	case child == nil:
		return "", syscall.ENOENT
	case wantFolder && !child.IsFolder():
		return "", syscall.ENOTDIR
	case !wantFolder && child.IsFolder():
		return "", syscall.EISDIR
	case wantFolder && child.ChildCount() > 0:
		return "", syscall.ENOTEMPTY
	}
	return child.ID(), fs.OK
}

func (n *Node) Unlink(ctx context.Context, name string) syscall.Errno {
	return n.remove(name, false)
}

func (n *Node) Rmdir(ctx context.Context, name string) syscall.Errno {
	return n.remove(name, true)
}

func (n *Node) remove(name string, isFolder bool) syscall.Errno {
	logger := util.GetLogger("Fuse.Remove")

	id, errno := n.childID(name, isFolder)
	if errno != fs.OK {
		return errno
	}
	removed, err := n.view.store.Find(id)
	if err != nil {
		return toErrno(err)
	}
	if _, err := n.view.store.Delete(id); err != nil {
		logger.Debug().Err(err).Str("id", id).Msg("Delete failed")
		return toErrno(err)
	}
	n.view.forget(removed)
	logger.Debug().Str("id", id).Str("name", name).Msg("Removed node")
	return fs.OK
}

// Rename relabels a node. Moving between folders is not supported.
func (n *Node) Rename(ctx context.Context, name string, newParent fs.InodeEmbedder, newName string, flags uint32) syscall.Errno {
	logger := util.GetLogger("Fuse.Rename")

	np, ok := newParent.(*Node)
	if !ok || np.id != n.id {
		return syscall.EXDEV
	}
	if name == newName {
		return fs.OK
	}

	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return toErrno(err)
	}
	child := nc.ChildByName(name)
	taken := nc.ChildByName(newName) != nil
	var id string
	if child != nil {
		id = child.ID()
	}
	nc.Close()

	switch {
	case child == nil:
		return syscall.ENOENT
	case taken:
		return syscall.EEXIST
	}
	if _, err := n.view.store.Edit(id, newName); err != nil {
		logger.Debug().Err(err).Str("id", id).Msg("Edit failed")
		return toErrno(err)
	}
	logger.Debug().Str("id", id).Str("from", name).Str("to", newName).Msg("Renamed node")
	return fs.OK
}

// Open allows reading the (always empty) contents of files
func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	nc, err := n.view.store.NodeCtx(n.id)
	if err != nil {
		return nil, 0, toErrno(err)
	}
	defer nc.Close()

	if nc.IsFolder() {
		return nil, 0, syscall.EISDIR
	}
	return nil, gofuse.FOPEN_KEEP_CACHE, fs.OK
}

func (n *Node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (gofuse.ReadResult, syscall.Errno) {
	return gofuse.ReadResultData(nil), fs.OK
}
