package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"moneymaster-server/internal/jwt"
	"moneymaster-server/internal/util"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/money"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "token", "specifies the command (token, highscore, earnings, reset-highscore)")
var userID = flag.String("user", "", "the user ID for token and earnings, token generates one if empty")
var moderator = flag.Bool("mod", false, "issue a moderator token")
var yes = flag.Bool("y", false, "do not ask for confirmation")

func main() {
	flag.Parse()
	ctx := context.Background()

	switch *command {
	case "token":
		if *userID == "" {
			*userID = util.RandomUserID()
			logrus.WithField("user", *userID).Info("generated user ID")
		}

		jwt.LoadKeys()
		token, err := jwt.Sign(*userID, *moderator)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	case "highscore":
		store := openStore()
		defer store.Close()

		fmt.Println(money.FormatAmount(getDecimal(ctx, store, kv.HighScoreKey)))
	case "earnings":
		if *userID == "" {
			logrus.Fatal("-user is required")
		}

		store := openStore()
		defer store.Close()

		fmt.Println(money.FormatAmount(getDecimal(ctx, store, kv.EarningsKey(*userID))))
	case "reset-highscore":
		if !*yes && !confirm("Reset the high score to $0.00 (y/N)") {
			os.Exit(1)
		}

		store := openStore()
		defer store.Close()

		if err := store.Set(ctx, kv.HighScoreKey, decimal.Zero.String()); err != nil {
			logrus.WithError(err).Fatal("could not reset high score")
		}

		fmt.Println("High score reset")
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func openStore() kv.StoreCloser {
	store, err := kv.Open()
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}

	return store
}

func getDecimal(ctx context.Context, store kv.Store, key string) decimal.Decimal {
	val, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return decimal.Zero
	} else if err != nil {
		logrus.WithError(err).Fatal("could not read value")
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Fatal("invalid value")
	}

	return d
}

// confirm asks the question on a terminal, anything else is a no
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		_, _ = fmt.Fprintln(os.Stderr, "stdin is not a terminal, use -y to confirm")
		return false
	}

	answer, err := getInput(question)
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	return answer != "" && strings.ToLower(answer)[0] == 'y'
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
