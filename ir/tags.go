package ir

import "strings"

// nativeTags lists the HTML and common SVG elements.  Anything else is
// treated as a component reference.
var nativeTags = map[string]bool{}

func init() {
	const htmlTags = "html,body,base,head,link,meta,style,title," +
		"address,article,aside,footer,header,h1,h2,h3,h4,h5,h6,nav,section," +
		"div,dd,dl,dt,figcaption,figure,picture,hr,img,li,main,ol,p,pre,ul," +
		"a,b,abbr,bdi,bdo,br,cite,code,data,dfn,em,i,kbd,mark,q,rp,rt,ruby," +
		"s,samp,small,span,strong,sub,sup,time,u,var,wbr,area,audio,map," +
		"track,video,embed,object,param,source,canvas,script,noscript,del," +
		"ins,caption,col,colgroup,table,thead,tbody,td,th,tr,button," +
		"datalist,fieldset,form,input,label,legend,meter,optgroup,option," +
		"output,progress,select,textarea,details,dialog,menu,summary," +
		"template,blockquote,iframe,tfoot,slot"
	const svgTags = "svg,animate,circle,clippath,defs,desc,ellipse,filter," +
		"font-face,foreignobject,g,image,line,lineargradient,marker,mask," +
		"metadata,path,pattern,polygon,polyline,radialgradient,rect,stop," +
		"switch,symbol,text,textpath,tspan,use,view"
	for _, tag := range strings.Split(htmlTags+","+svgTags, ",") {
		nativeTags[tag] = true
	}
}

// IsNativeTag returns true if the tag is a platform element rather than a
// component reference.
func IsNativeTag(tag string) bool {
	return nativeTags[strings.ToLower(tag)]
}
