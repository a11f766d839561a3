// Package ofx turns OFX/QFX bank and credit card statements into transaction
// drafts that can be scored in bulk.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options controls how statement lines become drafts.
type Options struct {
	// Location is used to derive hour and weekday. Defaults to time.Local.
	Location *time.Location
	// NewID generates ids for lines without a FITID.
	NewID func() string
	// CustomerID overrides the statement account id as the customer.
	CustomerID string
	// Account limits parsing to a single account id.
	Account        string
	DefaultChannel model.Channel
	AccountAgeDays int
	KYCVerified    bool
}

// DefaultOptions returns the options used when no flags override them.
func DefaultOptions() Options {
	return Options{
		Location:       time.Local,
		NewID:          model.NewTransactionID,
		DefaultChannel: model.DefaultChannel,
		AccountAgeDays: model.DefaultAccountAgeDays,
		KYCVerified:    true,
	}
}

// Entry is one statement line converted to a draft.
type Entry struct {
	Posted time.Time
	Payee  string
	Type   string
	Draft  model.Draft
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML exports sometimes drop the closing bracket of a bare tag line.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

type statement struct {
	accountID    string
	transactions []ofxgo.Transaction
}

// ParseDrafts parses an OFX/QFX document and returns one entry per statement
// transaction, in file order.
func (p *Parser) ParseDrafts(ctx context.Context, reader io.Reader, opts Options) ([]Entry, error) {
	opts = withDefaults(opts)
	if _, err := model.ParseChannel(string(opts.DefaultChannel)); err != nil {
		return nil, fmt.Errorf("invalid default channel: %w", err)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	statements := collectStatements(resp)

	var entries []Entry
	for _, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Account != "" && stmt.accountID != opts.Account {
			continue
		}
		for _, tx := range stmt.transactions {
			entry, err := p.convertTransaction(tx, stmt.accountID, opts)
			if err != nil {
				slog.Warn("Skipping statement line",
					"account", stmt.accountID,
					"fitid", string(tx.FiTID),
					"error", err)
				continue
			}
			entries = append(entries, entry)
		}
	}

	slog.Info("Parsed OFX file",
		"statements", len(statements),
		"drafts", len(entries))

	return entries, nil
}

// Accounts returns the distinct account ids present in the document.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	seen := make(map[string]bool)
	var accounts []string
	for _, stmt := range collectStatements(resp) {
		if stmt.accountID == "" || seen[stmt.accountID] {
			continue
		}
		seen[stmt.accountID] = true
		accounts = append(accounts, stmt.accountID)
	}
	return accounts, nil
}

func collectStatements(resp *ofxgo.Response) []statement {
	var out []statement
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			out = append(out, statement{
				accountID:    string(stmt.BankAcctFrom.AcctID),
				transactions: stmt.BankTranList.Transactions,
			})
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			out = append(out, statement{
				accountID:    string(stmt.CCAcctFrom.AcctID),
				transactions: stmt.BankTranList.Transactions,
			})
		}
	}
	return out
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.NewID == nil {
		opts.NewID = def.NewID
	}
	if opts.DefaultChannel == "" {
		opts.DefaultChannel = def.DefaultChannel
	}
	return opts
}

// convertTransaction maps one OFX line onto a draft.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, accountID string, opts Options) (Entry, error) {
	amount, _ := tx.TrnAmt.Float64()
	if amount < 0 {
		amount = -amount
	}

	id := string(tx.FiTID)
	if id == "" {
		id = opts.NewID()
	} else {
		id = "OFX-" + id
	}

	customer := opts.CustomerID
	if customer == "" {
		customer = accountID
	}

	posted := tx.DtPosted.In(opts.Location)
	draft := model.Draft{
		TransactionID:     id,
		CustomerID:        customer,
		AccountAgeDays:    opts.AccountAgeDays,
		TransactionAmount: amount,
		Channel:           channelFor(tx.TrnType, opts.DefaultChannel),
		KYCVerified:       opts.KYCVerified,
		Hour:              posted.Hour(),
		Weekday:           int(posted.Weekday()),
	}
	if err := draft.Validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		Draft:  draft,
		Posted: posted,
		Payee:  p.extractMerchantName(tx),
		Type:   tx.TrnType.String(),
	}, nil
}

func channelFor(t any, fallback model.Channel) model.Channel {
	switch t {
	case ofxgo.TrnTypeATM:
		return model.ChannelATM
	case ofxgo.TrnTypePOS:
		return model.ChannelPOS
	default:
		return fallback
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading MM/DD.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	default:
		return false
	}
}
