package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
)

func parseFavoriteID(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, errInvalidFavoriteID(raw)
	}
	return v, nil
}

func errInvalidFavoriteID(raw string) error {
	return fmt.Errorf("%w: favorite id %q is invalid", ErrInvalidInput, raw)
}

func errInvalidFavoriteKind(kind favorite.Kind) error {
	return fmt.Errorf("%w: favorite kind %q is invalid", ErrInvalidInput, kind)
}
