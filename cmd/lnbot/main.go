package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	lnbot "github.com/lnbot/lnbot-go"
	"github.com/lnbot/lnbot-go/money"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	_ "github.com/lnbot/lnbot-go/logging"
)

var apiKey = cli.StringFlag{
	Name:    "api-key",
	Usage:   "LnBot API key",
	Sources: cli.EnvVars("LNBOT_API_KEY"),
}

var baseURL = cli.StringFlag{
	Name:    "base-url",
	Usage:   "Override the API base URL",
	Value:   lnbot.DefaultBaseURL,
	Sources: cli.EnvVars("LNBOT_BASE_URL"),
}

func newClient(cmd *cli.Command) (*lnbot.Client, error) {
	key := cmd.String("api-key")
	if key == "" {
		return nil, errors.New("an API key is required; set --api-key or LNBOT_API_KEY")
	}

	return lnbot.New(key, lnbot.WithBaseURL(cmd.String("base-url"))), nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info("Received signal, shutting down")
		cancel()
	}()

	app := &cli.Command{
		Name:  "lnbot",
		Usage: "A CLI for the LnBot Lightning-wallet API",
		Flags: []cli.Flag{&apiKey, &baseURL},
		Commands: []*cli.Command{
			walletCmd(),
			invoiceCmd(),
			payCmd(),
			eventsCmd(),
			transactionsCmd(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func walletCmd() *cli.Command {
	return &cli.Command{
		Name:  "wallet",
		Usage: "Wallet operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new wallet and print its credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Wallet name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := lnbot.NewUnauthenticated(lnbot.WithBaseURL(cmd.String("base-url")))
					wallet, err := client.Wallets().Create(ctx, &lnbot.CreateWalletRequest{
						Name: cmd.String("name"),
					})
					if err != nil {
						return err
					}

					return printJSON(wallet)
				},
			},
			{
				Name:  "show",
				Usage: "Show the current wallet's balance",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newClient(cmd)
					if err != nil {
						return err
					}

					wallet, err := client.Wallets().Current(ctx)
					if err != nil {
						return err
					}

					fmt.Printf("%s: balance %s, on hold %s, available %s (%s BTC)\n",
						wallet.Name, wallet.Balance, wallet.OnHold, wallet.Available,
						wallet.Available.ToBtc())

					return nil
				},
			},
		},
	}
}

func invoiceCmd() *cli.Command {
	return &cli.Command{
		Name:  "invoice",
		Usage: "Invoice operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an invoice",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "amount",
						Usage:    "Amount in sats",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "memo",
						Usage: "Invoice description",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newClient(cmd)
					if err != nil {
						return err
					}

					invoice, err := client.Invoices().Create(ctx, &lnbot.CreateInvoiceRequest{
						Amount: money.Money(cmd.Int("amount")),
						Memo:   cmd.String("memo"),
					})
					if err != nil {
						return err
					}

					fmt.Println(invoice.Bolt11)

					return nil
				},
			},
			{
				Name:  "watch",
				Usage: "Watch an invoice until it settles or expires",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "number",
						Usage:    "Invoice number",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Server-side stream timeout in seconds",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newClient(cmd)
					if err != nil {
						return err
					}

					timeout := time.Duration(cmd.Int("timeout")) * time.Second
					stream, err := client.Invoices().Watch(ctx, int(cmd.Int("number")), timeout)
					if err != nil {
						return err
					}
					defer func() {
						if err := stream.Close(); err != nil {
							log.WithError(err).Warn("closing invoice stream")
						}
					}()

					for {
						event, err := stream.Recv()
						if err == io.EOF {
							return nil
						}
						if err != nil {
							return err
						}

						fmt.Printf("invoice %d: %s\n", event.Invoice.Number, event.Event)
						if event.Event == lnbot.InvoiceEventSettled || event.Event == lnbot.InvoiceEventExpired {
							return nil
						}
					}
				},
			},
		},
	}
}

func payCmd() *cli.Command {
	return &cli.Command{
		Name:      "pay",
		Usage:     "Pay a bolt11 invoice, Lightning address, or LNURL",
		ArgsUsage: "<target>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "amount",
				Usage: "Amount in sats (required for address/LNURL targets)",
			},
			&cli.IntFlag{
				Name:  "max-fee",
				Usage: "Maximum routing fee in sats",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one payment target is required")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			payment, err := client.Payments().Create(ctx, &lnbot.CreatePaymentRequest{
				Target: cmd.Args().First(),
				Amount: money.Money(cmd.Int("amount")),
				MaxFee: money.Money(cmd.Int("max-fee")),
			})
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"number": payment.Number,
				"status": payment.Status,
			}).Info("payment created")

			if payment.Status == lnbot.PaymentSettled || payment.Status == lnbot.PaymentFailed {
				return printJSON(payment)
			}

			stream, err := client.Payments().Watch(ctx, payment.Number, 0)
			if err != nil {
				return err
			}
			defer func() {
				if err := stream.Close(); err != nil {
					log.WithError(err).Warn("closing payment stream")
				}
			}()

			for {
				event, err := stream.Recv()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Printf("payment %d: %s\n", event.Payment.Number, event.Event)
				if event.Event == lnbot.PaymentEventSettled || event.Event == lnbot.PaymentEventFailed {
					return printJSON(&event.Payment)
				}
			}
		},
	}
}

func eventsCmd() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Tail the wallet-wide event stream",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			stream, err := client.Events().Stream(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := stream.Close(); err != nil {
					log.WithError(err).Warn("closing event stream")
				}
			}()

			for {
				event, err := stream.Recv()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Printf("%s %s %s\n", event.CreatedAt, event.Event, string(event.Data))
			}
		},
	}
}

func transactionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "transactions",
		Usage: "List ledger entries",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries",
			},
			&cli.IntFlag{
				Name:  "after",
				Usage: "Only entries after this number",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			txs, err := client.Transactions().List(ctx, &lnbot.ListParams{
				Limit: int(cmd.Int("limit")),
				After: int(cmd.Int("after")),
			})
			if err != nil {
				return err
			}

			for _, tx := range txs {
				fmt.Printf("#%d %s %s (balance %s) %s\n",
					tx.Number, tx.Type, tx.Amount, tx.BalanceAfter, tx.Note)
			}

			return nil
		},
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
