package rest

import (
	"fmt"
	"regexp"
	"strings"
)

// ===== Validation =====
// エンティティ毎に静的なルール表（フィールド名 → 検証関数）を書き、
// ここで一括評価する。最初の失敗で止めず全フィールド分を集約して返す。

type Check func() string // 問題なければ ""

type Rules map[string][]Check

func (r Rules) Validate() *Error {
	fields := map[string][]string{}
	for name, checks := range r {
		for _, check := range checks {
			if problem := check(); problem != "" {
				fields[name] = append(fields[name], problem)
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return ErrValidation("validation failed", fields)
}

func Required(v string) Check {
	return func() string {
		if strings.TrimSpace(v) == "" {
			return "required"
		}
		return ""
	}
}

func MaxLen(v string, n int) Check {
	return func() string {
		if len(v) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Email(v string) Check {
	return func() string {
		if v != "" && !emailRe.MatchString(v) {
			return "invalid email format"
		}
		return ""
	}
}

func MinInt(v, min int) Check {
	return func() string {
		if v < min {
			return fmt.Sprintf("must be at least %d", min)
		}
		return ""
	}
}

func PositiveID(v uint64) Check {
	return func() string {
		if v == 0 {
			return "required"
		}
		return ""
	}
}

// ポインタフィールド（部分更新）用。nil の場合は検証しない。
func IfSet(p *string, build func(string) Check) Check {
	return func() string {
		if p == nil {
			return ""
		}
		return build(*p)()
	}
}
