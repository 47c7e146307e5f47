package preprocess

// Fixed dictionaries used by the pipeline. These come from the chat corpus the
// system was tuned on; matching is whole-token only, so entries never rewrite
// the inside of a longer word.

// consonantAbbr expands Korean consonant abbreviations.
var consonantAbbr = map[string]string{
	// greetings
	"ㅎㅇ": "하이",
	"ㅂㅂ": "바이바이",
	"ㅂㅇ": "바이",
	"ㅌㅌ": "도망가",

	// reactions
	"ㅇㅈ": "인정",
	"ㅁㅊ": "미쳤어",
	"ㄷㄷ": "떨어",
	"ㅜㅜ": "흑흑",
	"ㅠㅠ": "흑흑",
	"ㄲㅂ": "아깝다",
	"ㅅㄱ": "수고",

	// agreement
	"ㅇㅋ": "오케이",
	"ㄱㅊ": "괜찮아",
	"ㄱㅅ": "감사",

	// refusal
	"ㄴㄴ": "노노",
	"ㅈㅅ": "죄송",
	"ㅁㄹ": "모르겠어",

	// laughter
	"ㅋㅋ": "하하",
	"ㅎㅎ": "하하",
	"ㄲㅈ": "꺾여",

	// gaming / streaming
	"ㅈㅈ":   "굿 게임",
	"ㄱㄱ":   "고고",
	"ㅂㅌ":   "배틀",
	"ㄹㅇ":   "진짜",
	"ㅈㄴ":   "진짜",
	"ㅇㄱㄹㅇ": "이거 진짜",
	"ㄹㅈㄷ":  "레전드",
	"ㅍㅇㅌ":  "파이팅",
}

// slangDict expands internet slang after the consonant pass, so expansions
// such as ㅇㅋ→오케이→괜찮아 chain across the two passes.
var slangDict = map[string]string{
	"ㄹㅈㄷ": "레전드",
	"ㅈㄱㄴ": "지금",
	"레게노": "레전드",
	"갓":   "최고",
	"고트":  "최고",
	"핵":   "엄청",
	"졸라":  "엄청",
	"개꿀":  "엄청 좋은",
	"꿀잼":  "재미있어",
	"노잼":  "재미없어",
	"띵작":  "명작",
	"명작":  "최고작품",
	"갓작":  "최고작품",

	"빡침":     "화남",
	"개빡침":    "엄청 화남",
	"별로":     "그냥 그래",
	"개별로":    "정말 안좋아",
	"좋아욥":    "좋아요",
	"좋아염":    "좋아요",
	"나쁘지않음":  "나쁘지않아요",
	"웃김":     "웃겨요",
	"웃기네":    "웃겨요",
	"인정함":    "인정해요",
	"쩔수지":    "어쩔수없지",
	"쩔수":     "어쩔수없지",
	"까비지":    "아깝다",
	"까비":     "아깝다",
	"쩔지":     "대단하지",

	"ㅇㅇ": "응",
	"ㄴㄴ": "아니",

	"굿":   "좋아",
	"베드":  "나빠",
	"나이스": "좋아",
	"오케이": "괜찮아",
	"베리":  "매우",
	"베리굿": "아주좋아",
}

// typoTable is the fixed safety-net pass that runs after the normalizer's
// spell correction, catching forms the statistical model misses.
var typoTable = map[string]string{
	// 되/돼
	"됬어요":  "됐어요",
	"됬습니다": "됐습니다",
	"됬네요":  "됐네요",
	"됬다":   "됐다",
	"됬어":   "됐어",
	"되요":   "돼요",
	"되세요":  "돼세요",
	"안되요":  "안 돼요",
	"안돼요":  "안 돼요",

	// 하려/할려
	"할려고": "하려고",
	"할려면": "하려면",
	"할려":  "하려",

	// 왠/웬
	"왠만": "웬만",
	"왠일": "웬일",
}

// profanityTokens are masked only when they form a whole token.
var profanityTokens = map[string]string{
	"ㅅㅂ": "***",
	"ㅂㅅ": "***",
}

// DefaultProtectRules lists spaced pairs the spacing normalizer must not
// split; the pipeline re-joins them after the spacing pass.
func DefaultProtectRules() []ProtectRule {
	return []ProtectRule{
		{Spaced: "오늘 날씨", Joined: "오늘날씨"},
		{Spaced: "어제 날씨", Joined: "어제날씨"},
	}
}
