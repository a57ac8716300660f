package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// Column layout expected in every quiz sheet:
// ID | Question | Option A | Option B | Option C | Option D | Correct (1-4)
const minQuestionColumns = 7

// QuestionParser converts one raw spreadsheet sheet into a validated,
// deduplicated list of questions with row-level diagnostics.
type QuestionParser interface {
	// ParseRows never fails on bad rows; it skips and counts them.
	ParseRows(rows [][]string, source string) ([]models.Question, *models.ParseStats)

	// ParseWorkbook reads the first visible sheet of a spreadsheet
	// stream. It fails with ErrSourceUnreadable when the stream is not
	// a workbook or contains no visible sheet.
	ParseWorkbook(r io.Reader, source string) ([]models.Question, *models.ParseStats, error)
}

type questionParser struct {
	logger utils.Logger
}

func NewQuestionParser(logger utils.Logger) QuestionParser {
	return &questionParser{logger: logger}
}

func (p *questionParser) ParseWorkbook(r io.Reader, source string) ([]models.Question, *models.ParseStats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	var visible []string
	for _, name := range sheets {
		ok, err := f.GetSheetVisible(name)
		if err != nil {
			continue
		}
		if ok {
			visible = append(visible, name)
		}
	}
	if len(visible) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: no visible sheets", ErrSourceUnreadable, source)
	}

	p.logger.Debug("Processing workbook",
		"source", source,
		"total_sheets", len(sheets),
		"visible_sheets", len(visible))

	rows, err := f.GetRows(visible[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, source, err)
	}

	questions, stats := p.ParseRows(rows, source)
	stats.HiddenSheets = len(sheets) - len(visible)
	return questions, stats, nil
}

func (p *questionParser) ParseRows(rows [][]string, source string) ([]models.Question, *models.ParseStats) {
	stats := &models.ParseStats{TotalRows: len(rows)}
	questions := make([]models.Question, 0, len(rows))

	// Seen ids are scoped to this parse call so concurrent parses of
	// different files never interfere.
	seenIDs := make(map[int]struct{})

	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]

		if isEmptyRow(row) {
			stats.EmptyRows++
			continue
		}

		if len(row) < minQuestionColumns {
			p.logger.Warn("Skipping malformed row",
				"source", source, "row", i+1,
				"expected_columns", minQuestionColumns, "got", len(row))
			stats.MalformedRows++
			continue
		}

		id, ok := parsePositiveInt(row[0])
		if !ok {
			p.logger.Warn("Skipping row with invalid id",
				"source", source, "row", i+1, "value", row[0])
			stats.InvalidIDRows++
			continue
		}

		// First occurrence wins.
		if _, dup := seenIDs[id]; dup {
			p.logger.Warn("Skipping duplicate id",
				"source", source, "row", i+1, "id", id)
			stats.DuplicateIDs++
			continue
		}
		seenIDs[id] = struct{}{}

		questionText := strings.TrimSpace(row[1])
		if questionText == "" {
			p.logger.Warn("Skipping row with empty question text",
				"source", source, "row", i+1, "id", id)
			stats.EmptyQuestionRows++
			continue
		}

		var options [4]string
		for j := range options {
			options[j] = strings.TrimSpace(row[2+j])
		}

		correctNum, ok := parseIntInRange(row[6], 1, 4)
		if !ok {
			p.logger.Warn("Skipping row with invalid correct answer",
				"source", source, "row", i+1, "id", id, "value", row[6])
			stats.InvalidAnswerRows++
			continue
		}

		if options[correctNum-1] == "" {
			p.logger.Warn("Skipping row whose correct option is empty",
				"source", source, "row", i+1, "id", id, "correct", correctNum)
			stats.InvalidAnswerRows++
			continue
		}

		questions = append(questions, models.Question{
			ID:                 id,
			Question:           questionText,
			Options:            options,
			CorrectAnswerIndex: correctNum - 1, // 1-based in source
		})
		stats.ValidQuestions++
	}

	p.logger.Info("Parsed quiz sheet",
		"source", source,
		"total_rows", stats.TotalRows,
		"valid_questions", stats.ValidQuestions,
		"empty_rows", stats.EmptyRows,
		"malformed_rows", stats.MalformedRows,
		"invalid_id_rows", stats.InvalidIDRows,
		"empty_question_rows", stats.EmptyQuestionRows,
		"invalid_answer_rows", stats.InvalidAnswerRows,
		"duplicate_ids", stats.DuplicateIDs)

	return questions, stats
}

// isEmptyRow reports whether every cell is blank after trimming.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isHeaderRow detects a column-title row: the first cell holds text
// that does not parse as a number.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.TrimSpace(row[0])
	if first == "" {
		return false
	}
	_, err := strconv.ParseFloat(first, 64)
	return err != nil
}

// parsePositiveInt accepts values like "12" or "12.0" but rejects
// non-integers, zero and negatives.
func parsePositiveInt(cell string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || f <= 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseIntInRange(cell string, min, max int) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	n := int(f)
	if n < min || n > max {
		return 0, false
	}
	return n, true
}
