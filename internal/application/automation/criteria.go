package automation

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Claves de refinamiento reconocidas en eventData.
const (
	DataKeyKeyword = "keyword"
	DataKeyGroupID = "groupId"
	DataKeyTagID   = "tagId"
)

// EventCriteria es el criterio de disparo de un workflow de tipo "event",
// parseado una sola vez desde el JSON almacenado. Los campos de refinamiento
// son opcionales: un campo nil no impone restricción.
type EventCriteria struct {
	EventType string
	Keyword   *string
	GroupID   *string
	TagID     *string
}

// rawEventCriteria refleja el JSON que escribe el editor de reglas.
type rawEventCriteria struct {
	EventType    string `json:"eventType"`
	Keyword      *string `json:"keyword"`
	GroupID      *string `json:"groupId"`
	TagID        *string `json:"tagId"`
	InactiveDays any     `json:"inactiveDays"`
}

// ParseEventCriteria interpreta el blob JSON del workflow. Un JSON malformado
// o sin eventType produce un criterio vacío que nunca hace match por la vía
// de eventos (el error no se propaga: criterio malo = workflow que no dispara).
func ParseEventCriteria(raw string) EventCriteria {
	var rc rawEventCriteria
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return EventCriteria{}
	}
	return EventCriteria{
		EventType: strings.TrimSpace(rc.EventType),
		Keyword:   rc.Keyword,
		GroupID:   rc.GroupID,
		TagID:     rc.TagID,
	}
}

// Matches evalúa el criterio contra un evento entrante. El eventType debe
// coincidir (case-insensitive). Cada refinamiento restringe SOLO si está
// presente en ambos lados: un campo del criterio sin contraparte en el
// evento se ignora en silencio (diseño permisivo de grueso a fino).
func (c EventCriteria) Matches(eventType string, eventData map[string]string) bool {
	if c.EventType == "" || !strings.EqualFold(c.EventType, eventType) {
		return false
	}
	if c.Keyword != nil {
		if v, ok := eventData[DataKeyKeyword]; ok && !strings.EqualFold(strings.TrimSpace(*c.Keyword), strings.TrimSpace(v)) {
			return false
		}
	}
	if c.GroupID != nil {
		if v, ok := eventData[DataKeyGroupID]; ok && *c.GroupID != v {
			return false
		}
	}
	if c.TagID != nil {
		if v, ok := eventData[DataKeyTagID]; ok && *c.TagID != v {
			return false
		}
	}
	return true
}

// ParseInactivityCriteria extrae los días de inactividad de un criterio
// {"eventType":"Inactivity","inactiveDays":N}. Devuelve ok=false si el
// criterio no es de inactividad o los días no son un entero positivo.
func ParseInactivityCriteria(raw string) (days int, ok bool) {
	var rc rawEventCriteria
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return 0, false
	}
	if !strings.EqualFold(strings.TrimSpace(rc.EventType), "Inactivity") {
		return 0, false
	}
	switch v := rc.InactiveDays.(type) {
	case float64:
		days = int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		days = n
	default:
		return 0, false
	}
	if days <= 0 {
		return 0, false
	}
	return days, true
}

// KeywordCriteria es la lista de keywords que dispara un workflow de tipo
// "keyword". Comparación case-insensitive y con espacios recortados.
type KeywordCriteria struct {
	Keywords []string
}

// rawKeywordCriteria acepta {"keyword":"X"} o {"keywords": <lista>}.
// El campo keywords puede venir como arreglo JSON o como string que a su
// vez contiene un arreglo JSON (doble codificación del editor legado).
type rawKeywordCriteria struct {
	Keyword  string          `json:"keyword"`
	Keywords json.RawMessage `json:"keywords"`
}

// ParseKeywordCriteria interpreta el criterio keyword. Si el blob no es un
// objeto JSON se trata como lista literal separada por comas en lugar de
// fallar el match.
func ParseKeywordCriteria(raw string) KeywordCriteria {
	var rc rawKeywordCriteria
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return KeywordCriteria{Keywords: splitKeywordList(raw)}
	}
	var out []string
	if k := strings.TrimSpace(rc.Keyword); k != "" {
		out = append(out, k)
	}
	if len(rc.Keywords) > 0 {
		out = append(out, decodeKeywordsField(rc.Keywords)...)
	}
	return KeywordCriteria{Keywords: out}
}

// Matches indica si el keyword entrante está en la lista del criterio.
func (c KeywordCriteria) Matches(keyword string) bool {
	needle := strings.TrimSpace(keyword)
	if needle == "" {
		return false
	}
	for _, k := range c.Keywords {
		if strings.EqualFold(k, needle) {
			return true
		}
	}
	return false
}

func decodeKeywordsField(raw json.RawMessage) []string {
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return trimKeywords(arr)
	}
	// String con un arreglo JSON adentro, o lista separada por comas
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return trimKeywords(arr)
	}
	return splitKeywordList(s)
}

func splitKeywordList(raw string) []string {
	return trimKeywords(strings.Split(raw, ","))
}

func trimKeywords(in []string) []string {
	var out []string
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
