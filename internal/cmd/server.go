package cmd

import (
	"context"
	"syscall"
	"time"

	"git.sr.ht/~mariusor/lw"
	w "git.sr.ht/~mariusor/wrapper"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/monthcal/ical"
)

var Server = cli.Command{
	Name:  "serve",
	Usage: "Serves the saved events as an iCal feed",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Set the address on which to listen to, defaults to the configured one",
		},
	},
	Action: serverStart,
}

var wait = 100 * time.Millisecond

func serverStart(c *cli.Context) error {
	l := logger(c)
	e, err := openEnv(c, l)
	if err != nil {
		return err
	}
	listen := e.conf.Listen
	if c.IsSet("listen") {
		listen = c.String("listen")
	}
	l = l.WithContext(lw.Ctx{"listen": listen})
	l.Infof("Listening")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	// Get start/stop functions for the http server
	srvRun, srvStop := w.HttpServer(w.Handler(ical.Routes(e.backend, AppVersion, l)), w.OnTCP(listen))
	w.RegisterSignalHandlers(w.SignalHandlers{
		syscall.SIGHUP: func(_ chan int) {
			l.Infof("SIGHUP received, the feed is reloaded on every request")
		},
		syscall.SIGINT: func(exit chan int) {
			l.Infof("SIGINT received, stopping")
			exit <- 0
		},
		syscall.SIGTERM: func(exit chan int) {
			l.Infof("SIGTERM received, force stopping")
			exit <- 0
		},
		syscall.SIGQUIT: func(exit chan int) {
			l.Infof("SIGQUIT received, force stopping with core-dump")
			exit <- 0
		},
	}).Exec(func() error {
		if err := srvRun(); err != nil {
			l.Errorf("Error: %s", err)
			return err
		}
		var err error
		// Doesn't block if no connections, but will otherwise wait until the timeout deadline.
		go func(e error) {
			if err = srvStop(ctx); err != nil {
				l.Errorf("Error: %s", err)
			}
		}(err)
		return err
	})

	return nil
}
