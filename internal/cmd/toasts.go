package cmd

import (
	"sync"

	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

// toastPrinter shows each notification once, as soon as it is queued, so
// expiry never hides a toast the user has not seen.
type toastPrinter struct {
	store *store.Store

	mu          sync.Mutex
	seen        map[string]bool
	stopOnce    sync.Once
	unsubscribe func()
}

func startToastPrinter(st *store.Store) *toastPrinter {
	p := &toastPrinter{store: st, seen: make(map[string]bool)}
	p.unsubscribe = st.Subscribe(func(store.State) { p.sync() })
	p.sync()
	return p
}

// sync prints whatever is queued now; deliveries can arrive out of order.
func (p *toastPrinter) sync() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printLocked(p.store.State().Notify.Notifications)
}

// print shows the notifications in list that have not been shown yet.
func (p *toastPrinter) print(list []notify.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printLocked(list)
}

func (p *toastPrinter) printLocked(list []notify.Notification) {
	fresh := make([]notify.Notification, 0, len(list))
	for _, n := range list {
		if p.seen[n.ID] {
			continue
		}
		p.seen[n.ID] = true
		fresh = append(fresh, n)
	}
	formatter.PrintToasts(fresh)
}

// stop detaches the printer. Safe to call more than once.
func (p *toastPrinter) stop() {
	p.stopOnce.Do(p.unsubscribe)
}
