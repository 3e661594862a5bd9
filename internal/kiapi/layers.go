package kiapi

// BoardLayer is kiapi.board.types.BoardLayer.
type BoardLayer int32

const (
	LayerUnknown    BoardLayer = 0
	LayerUndefined  BoardLayer = 1
	LayerUnselected BoardLayer = 2
	LayerFCu        BoardLayer = 3
	LayerIn1Cu      BoardLayer = 4
	LayerIn2Cu      BoardLayer = 5
	LayerIn3Cu      BoardLayer = 6
	LayerIn4Cu      BoardLayer = 7
	LayerIn5Cu      BoardLayer = 8
	LayerIn6Cu      BoardLayer = 9
	LayerIn7Cu      BoardLayer = 10
	LayerIn8Cu      BoardLayer = 11
	LayerIn9Cu      BoardLayer = 12
	LayerIn10Cu     BoardLayer = 13
	LayerIn11Cu     BoardLayer = 14
	LayerIn12Cu     BoardLayer = 15
	LayerIn13Cu     BoardLayer = 16
	LayerIn14Cu     BoardLayer = 17
	LayerIn15Cu     BoardLayer = 18
	LayerIn16Cu     BoardLayer = 19
	LayerIn17Cu     BoardLayer = 20
	LayerIn18Cu     BoardLayer = 21
	LayerIn19Cu     BoardLayer = 22
	LayerIn20Cu     BoardLayer = 23
	LayerIn21Cu     BoardLayer = 24
	LayerIn22Cu     BoardLayer = 25
	LayerIn23Cu     BoardLayer = 26
	LayerIn24Cu     BoardLayer = 27
	LayerIn25Cu     BoardLayer = 28
	LayerIn26Cu     BoardLayer = 29
	LayerIn27Cu     BoardLayer = 30
	LayerIn28Cu     BoardLayer = 31
	LayerIn29Cu     BoardLayer = 32
	LayerIn30Cu     BoardLayer = 33
	LayerBCu        BoardLayer = 34
	LayerFAdhes     BoardLayer = 35
	LayerBAdhes     BoardLayer = 36
	LayerFPaste     BoardLayer = 37
	LayerBPaste     BoardLayer = 38
	LayerFSilkS     BoardLayer = 39
	LayerBSilkS     BoardLayer = 40
	LayerFMask      BoardLayer = 41
	LayerBMask      BoardLayer = 42
	LayerDwgsUser   BoardLayer = 43
	LayerCmtsUser   BoardLayer = 44
	LayerEco1User   BoardLayer = 45
	LayerEco2User   BoardLayer = 46
	LayerEdgeCuts   BoardLayer = 47
	LayerMargin     BoardLayer = 48
	LayerBCrtYd     BoardLayer = 49
	LayerFCrtYd     BoardLayer = 50
	LayerBFab       BoardLayer = 51
	LayerFFab       BoardLayer = 52
	LayerUser1      BoardLayer = 53
	LayerUser2      BoardLayer = 54
	LayerUser3      BoardLayer = 55
	LayerUser4      BoardLayer = 56
	LayerUser5      BoardLayer = 57
	LayerUser6      BoardLayer = 58
	LayerUser7      BoardLayer = 59
	LayerUser8      BoardLayer = 60
	LayerUser9      BoardLayer = 61
)

var boardLayerNames = map[BoardLayer]string{
	LayerUnknown:    "BL_UNKNOWN",
	LayerUndefined:  "BL_UNDEFINED",
	LayerUnselected: "BL_UNSELECTED",
	LayerFCu:        "BL_F_Cu",
	LayerIn1Cu:      "BL_In1_Cu",
	LayerIn2Cu:      "BL_In2_Cu",
	LayerIn3Cu:      "BL_In3_Cu",
	LayerIn4Cu:      "BL_In4_Cu",
	LayerIn5Cu:      "BL_In5_Cu",
	LayerIn6Cu:      "BL_In6_Cu",
	LayerIn7Cu:      "BL_In7_Cu",
	LayerIn8Cu:      "BL_In8_Cu",
	LayerIn9Cu:      "BL_In9_Cu",
	LayerIn10Cu:     "BL_In10_Cu",
	LayerIn11Cu:     "BL_In11_Cu",
	LayerIn12Cu:     "BL_In12_Cu",
	LayerIn13Cu:     "BL_In13_Cu",
	LayerIn14Cu:     "BL_In14_Cu",
	LayerIn15Cu:     "BL_In15_Cu",
	LayerIn16Cu:     "BL_In16_Cu",
	LayerIn17Cu:     "BL_In17_Cu",
	LayerIn18Cu:     "BL_In18_Cu",
	LayerIn19Cu:     "BL_In19_Cu",
	LayerIn20Cu:     "BL_In20_Cu",
	LayerIn21Cu:     "BL_In21_Cu",
	LayerIn22Cu:     "BL_In22_Cu",
	LayerIn23Cu:     "BL_In23_Cu",
	LayerIn24Cu:     "BL_In24_Cu",
	LayerIn25Cu:     "BL_In25_Cu",
	LayerIn26Cu:     "BL_In26_Cu",
	LayerIn27Cu:     "BL_In27_Cu",
	LayerIn28Cu:     "BL_In28_Cu",
	LayerIn29Cu:     "BL_In29_Cu",
	LayerIn30Cu:     "BL_In30_Cu",
	LayerBCu:        "BL_B_Cu",
	LayerFAdhes:     "BL_F_Adhes",
	LayerBAdhes:     "BL_B_Adhes",
	LayerFPaste:     "BL_F_Paste",
	LayerBPaste:     "BL_B_Paste",
	LayerFSilkS:     "BL_F_SilkS",
	LayerBSilkS:     "BL_B_SilkS",
	LayerFMask:      "BL_F_Mask",
	LayerBMask:      "BL_B_Mask",
	LayerDwgsUser:   "BL_Dwgs_User",
	LayerCmtsUser:   "BL_Cmts_User",
	LayerEco1User:   "BL_Eco1_User",
	LayerEco2User:   "BL_Eco2_User",
	LayerEdgeCuts:   "BL_Edge_Cuts",
	LayerMargin:     "BL_Margin",
	LayerBCrtYd:     "BL_B_CrtYd",
	LayerFCrtYd:     "BL_F_CrtYd",
	LayerBFab:       "BL_B_Fab",
	LayerFFab:       "BL_F_Fab",
	LayerUser1:      "BL_User_1",
	LayerUser2:      "BL_User_2",
	LayerUser3:      "BL_User_3",
	LayerUser4:      "BL_User_4",
	LayerUser5:      "BL_User_5",
	LayerUser6:      "BL_User_6",
	LayerUser7:      "BL_User_7",
	LayerUser8:      "BL_User_8",
	LayerUser9:      "BL_User_9",
}

func (l BoardLayer) String() string { return enumName(boardLayerNames, l) }

// Known reports whether l is a value of the schema enum.
func (l BoardLayer) Known() bool {
	_, ok := boardLayerNames[l]
	return ok
}
