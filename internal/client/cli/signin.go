package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/giftkeeper/internal/client/validation"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
)

// SignIn asks for a display name, validates it and stores it.
func (a *App) SignIn(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "What should we call you?", a.out)
	if err != nil {
		a.log.Error(ctx, "error reading display name", "error", err)
		return err
	}

	name = validation.SanitizeInput(name)
	if res := validation.ValidateDisplayName(name); !res.IsValid {
		a.printValidation(res.Errors)
		return fmt.Errorf("display name: %w", common.ErrorValidation)
	}

	if err := a.services.Users.SaveDisplayName(ctx, name); err != nil {
		a.reportFailure(ctx, err)
		return err
	}

	a.userName = name
	a.printf("Hello, %s!\n", name)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	a.printf("Signed in as %s\n", a.userName)
	return nil
}
