package model

import "errors"

// Common errors used across the application
var (
	// Placement errors
	ErrMiddleOfNowhere   = errors.New("tile must be placed next to an existing tile")
	ErrCutoff            = errors.New("tile would route a track straight back off the board")
	ErrInvalidPosition   = errors.New("invalid board position")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrEmptyHand         = errors.New("no tile in hand")
	ErrTileAlreadyPlaced = errors.New("tile has already been placed")
	ErrInvalidTileKind   = errors.New("invalid tile kind")

	// Game errors
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrInvalidSettings  = errors.New("invalid game settings")
	ErrInvalidScoreType = errors.New("invalid score type")
	ErrGameComplete     = errors.New("game is already complete")

	// Save file errors
	ErrInvalidSaveFile = errors.New("invalid save file")
	ErrSaveNotFound    = errors.New("save file not found")
	ErrUnencodableTile = errors.New("tile cannot be encoded")

	// Storage errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameExists      = errors.New("game already exists")
	ErrInvalidGameName = errors.New("invalid game name")
)
