// Dialcast advertises a virtual DIAL media-rendering device on the local
// network and serves its UPnP device description, so second-screen clients
// can discover this host over SSDP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dialcast/dialcast/config"
	"github.com/dialcast/dialcast/descriptor"
	"github.com/dialcast/dialcast/netutils"
	"github.com/dialcast/dialcast/ssdp"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "dialcast",
	Short: "DIAL/SSDP discovery responder",
	Long: `Dialcast announces a virtual media-rendering device over SSDP and
answers DIAL discovery queries with the location of its device descriptor.

On startup it sends the NOTIFY advertisement burst, then keeps answering
M-SEARCH queries on 239.255.255.250:1900 and serving the descriptor document
over TCP until interrupted.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file (YAML)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	identity, err := ssdp.NewIdentity(cfg.DeviceUUID, cfg.Server)
	if err != nil {
		return err
	}
	log.Infof("✅ Device identity: %s", identity.UUID)

	localIP := cfg.LocalIP
	if localIP == "" {
		localIP, err = netutils.GuessLocalIP()
		if err != nil {
			return err
		}
		if candidates, err := netutils.AdvertisableIPs(); err != nil {
			log.Warnf("❌ Cannot list interfaces: %v", err)
		} else {
			for iface, ips := range candidates {
				log.Debugf("Interface %s: %v", iface, ips)
			}
		}
		log.Infof("✅ Advertising local IP %s", localIP)
	}

	location := fmt.Sprintf("http://%s:%d%s", localIP, cfg.DescriptorPort, descriptor.Path)

	var source descriptor.Source
	if cfg.DescriptorFile != "" {
		source = descriptor.File(cfg.DescriptorFile)
	} else {
		doc, err := descriptor.Generate(descriptor.Device{
			UDN:          identity.UUID,
			FriendlyName: cfg.FriendlyName,
			Manufacturer: cfg.Manufacturer,
			ModelName:    cfg.ModelName,
		})
		if err != nil {
			return err
		}
		source = descriptor.Static(doc)
	}

	conn, err := ssdp.Listen()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	advertiser := ssdp.NewAdvertiser(conn, identity, location)
	advertiser.MaxAge = cfg.MaxAge
	listener := ssdp.NewListener(conn, identity, location)
	server := descriptor.NewServer(cfg.DescriptorPort, source)

	// The startup burst completes before the listener's steady-state loop
	// begins; afterwards both ends share the socket freely.
	if err := advertiser.Broadcast(); err != nil {
		return err
	}
	defer advertiser.ByeBye()

	errc := make(chan error, 2)
	go func() { errc <- listener.Serve(ctx) }()
	go func() { errc <- server.Serve(ctx) }()
	go advertiser.KeepAlive(ctx)

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Infof("👋 Shutting down")
	return nil
}
