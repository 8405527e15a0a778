package adapter

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// GetAccountSolBalanceChanges emits a BalanceChange per account whose SOL
// balance moved, keyed by the account itself or by its token-account owner
// when isOwner is true. Zero-change entries are omitted (spec §4.3).
func (a *Adapter) GetAccountSolBalanceChanges(isOwner bool) map[string]types.BalanceChange {
	changes := make(map[string]types.BalanceChange)
	pre := a.raw.Meta.PreBalances
	post := a.raw.Meta.PostBalances
	if pre == nil || post == nil {
		return changes
	}

	for i, key := range a.accountKeys {
		if i >= len(pre) || i >= len(post) {
			continue
		}
		preLamports := pre[i]
		postLamports := post[i]
		delta := int64(postLamports) - int64(preLamports)
		if delta == 0 {
			continue
		}

		accountKey := key
		if isOwner {
			if owner, ok := a.GetTokenAccountOwner(key); ok {
				accountKey = owner
			}
		}

		changes[accountKey] = types.BalanceChange{
			Pre:  solToAmount(preLamports),
			Post: solToAmount(postLamports),
			Change: types.TokenAmount{
				Mint:     registry.NativeSOLMint,
				Amount:   strconv.FormatInt(delta, 10),
				Decimals: 9,
				UIAmount: float64(delta) / 1e9,
			},
		}
	}
	return changes
}

// GetAccountTokenBalanceChanges combines pre/post token-balance arrays into
// a nested owner_or_account -> mint -> BalanceChange map, pruning zero-delta
// entries (spec §4.3). Accounts present only in pre treat post as zero;
// accounts present only in post treat pre as zero.
func (a *Adapter) GetAccountTokenBalanceChanges(isOwner bool) map[string]map[string]types.BalanceChange {
	type slot struct {
		pre, post types.TokenAmount
		hasPre    bool
		hasPost   bool
	}

	keyFor := func(accountKey string) string {
		if isOwner {
			if owner, ok := a.GetTokenAccountOwner(accountKey); ok {
				return owner
			}
		}
		return accountKey
	}

	slots := make(map[[2]string]*slot)
	order := make([][2]string, 0)

	touch := func(accountKey string, b RawTokenBalance, isPre bool) {
		if b.Mint == "" || accountKey == "" {
			return
		}
		key := keyFor(accountKey)
		id := [2]string{key, b.Mint}
		s, ok := slots[id]
		if !ok {
			s = &slot{}
			slots[id] = s
			order = append(order, id)
		}
		amt := tokenAmountFromBalance(b)
		if isPre {
			s.pre, s.hasPre = amt, true
		} else {
			s.post, s.hasPost = amt, true
		}
	}

	for _, b := range a.raw.Meta.PreTokenBalances {
		touch(resolveTokenBalanceAccount(b, a.accountKeys), b, true)
	}
	for _, b := range a.raw.Meta.PostTokenBalances {
		touch(resolveTokenBalanceAccount(b, a.accountKeys), b, false)
	}

	changes := make(map[string]map[string]types.BalanceChange)
	for _, id := range order {
		s := slots[id]
		decimals := s.pre.Decimals
		if s.hasPost {
			decimals = s.post.Decimals
		}
		pre := s.pre
		if !s.hasPre {
			pre = types.TokenAmount{Mint: id[1], Amount: "0", Decimals: decimals}
		}
		post := s.post
		if !s.hasPost {
			post = types.TokenAmount{Mint: id[1], Amount: "0", Decimals: decimals}
		}

		preRaw, _ := strconv.ParseInt(pre.Amount, 10, 64)
		postRaw, _ := strconv.ParseInt(post.Amount, 10, 64)
		diff := postRaw - preRaw
		if diff == 0 {
			continue
		}

		if changes[id[0]] == nil {
			changes[id[0]] = make(map[string]types.BalanceChange)
		}
		changes[id[0]][id[1]] = types.BalanceChange{
			Pre:  pre,
			Post: post,
			Change: types.TokenAmount{
				Mint:     id[1],
				Amount:   strconv.FormatInt(diff, 10),
				Decimals: decimals,
				UIAmount: post.UIAmount - pre.UIAmount,
			},
		}
	}
	return changes
}

func tokenAmountFromBalance(b RawTokenBalance) types.TokenAmount {
	ui := 0.0
	if b.UITokenAmount.UIAmount != nil {
		ui = *b.UITokenAmount.UIAmount
	} else {
		ui = convertToUIAmount(b.UITokenAmount.Amount, b.UITokenAmount.Decimals)
	}
	amount := b.UITokenAmount.Amount
	if amount == "" {
		amount = "0"
	}
	return types.TokenAmount{
		Mint:     b.Mint,
		Amount:   amount,
		Decimals: b.UITokenAmount.Decimals,
		UIAmount: ui,
	}
}
